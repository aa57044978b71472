package coordinator

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srand/fastbuild/pkg/protocol"
)

func NewHttpHandler(registry *Registry, r *echo.Echo) {
	r.GET("/workers", func(c echo.Context) error {
		var body string
		for _, worker := range registry.Workers() {
			body += protocol.UnpackAddress(worker) + "\n"
		}
		return c.String(http.StatusOK, body)
	})

	r.GET("/metrics", func(c echo.Context) error {
		metrics := fmt.Sprintln("# TYPE fastbuild_coordinator_workers gauge")
		metrics += fmt.Sprintln("# HELP fastbuild_coordinator_workers The total number of workers currently available.")
		metrics += fmt.Sprintf("fastbuild_coordinator_workers %d\n", registry.Count())

		return c.String(http.StatusOK, metrics)
	})

	r.GET("/events", func(c echo.Context) error {
		consumer := registry.Subscribe()
		defer consumer.Close()

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlain)
		c.Response().WriteHeader(http.StatusOK)
		c.Response().Flush()

		for {
			select {
			case event, ok := <-consumer.Chan:
				if !ok {
					return nil
				}

				status := "unavailable"
				if event.Available {
					status = "available"
				}

				line := fmt.Sprintf("%s worker %s %s\n",
					event.Time.Local().Format("2006-01-02 15:04:05"),
					event.Address, status)

				if _, err := c.Response().Write([]byte(line)); err != nil {
					return nil
				}
				c.Response().Flush()

			case <-c.Request().Context().Done():
				return nil
			}
		}
	})
}
