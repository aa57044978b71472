package main

import (
	echo "github.com/labstack/echo/v4"
	"github.com/srand/fastbuild/pkg/log"
)

func HttpLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		log.Trace("HTTP", c.Request().Method, c.Response().Status, c.Request().URL, err)
		return err
	}
}
