package platform

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/denisbrodbeck/machineid"
)

type Property struct {
	Key   string
	Value string
}

// Platform describes the local node: operating system, architecture,
// cpu count, a stable machine id and the hostname. Daemons log it at
// startup so a fleet operator can tell nodes apart.
type Platform struct {
	Properties []*Property
}

func NewPlatform() *Platform {
	return &Platform{
		Properties: []*Property{},
	}
}

// NewPlatformWithDefaults creates a new platform with default properties
// like the architecture, operating system, number of cpus and a unique id.
func NewPlatformWithDefaults() *Platform {
	p := NewPlatform()
	p.addDefaults()
	return p
}

func (p *Platform) addDefaults() {
	p.AddProperty("node.arch", runtime.GOARCH)
	p.AddProperty("node.os", runtime.GOOS)
	p.AddProperty("node.cpus", fmt.Sprint(runtime.NumCPU()))
	if id, err := machineid.ProtectedID("fastbuild-worker"); err == nil {
		p.AddProperty("node.id", id)
	}
	if hostname, err := os.Hostname(); err == nil {
		p.AddProperty("worker.hostname", hostname)
	}
}

func (p *Platform) AddProperty(key, value string) {
	p.Properties = append(p.Properties, &Property{
		Key:   key,
		Value: value,
	})
}

// Map returns a map of all properties of the platform.
func (p *Platform) Map() map[string][]string {
	d := map[string][]string{}

	for _, property := range p.Properties {
		d[property.Key] = append(d[property.Key], property.Value)
	}

	return d
}

// String returns a string representation of the platform.
func (p *Platform) String() string {
	data := bytes.Buffer{}
	for _, prop := range p.Properties {
		fmt.Fprintf(&data, "%s=%s\n", prop.Key, prop.Value)
	}
	return data.String()
}
