package triagem

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Meta struct {
		Description string `yaml:"description"`
	} `yaml:"meta"`
	Library struct {
		FetchLimit int `yaml:"fetch_limit"`
	} `yaml:"library"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func LoadConfig(filename string) (*Config, error) {
	var ret Config
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, &ret)
	if err != nil {
		return nil, err
	}
	if ret.Library.FetchLimit < 0 {
		return nil, fmt.Errorf("library.fetch_limit must not be negative, got %d", ret.Library.FetchLimit)
	}
	if ret.Server.Addr == "" {
		ret.Server.Addr = ":8080"
	}
	return &ret, nil
}
