package gameconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

//go:embed catalog.json
var defaultCatalog []byte

// LoadCatalog 读取玩法目录；path 为空使用内置 catalog.json。
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	if path == "" {
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(defaultCatalog)); err != nil {
			return nil, fmt.Errorf("read embedded catalog: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	c := &Catalog{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefaultCatalog 只给测试和启动期使用，内置目录出错直接 panic。
func MustDefaultCatalog() *Catalog {
	c, err := LoadCatalog("")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	switch {
	case len(c.Monsters) == 0:
		return errors.New("catalog: monsters is empty")
	case len(c.ResourceNodes) == 0:
		return errors.New("catalog: resource_nodes is empty")
	case len(c.StarterCity.Resources) == 0:
		return errors.New("catalog: starter_city.resources is empty")
	case c.StarterPlayer.MaxHealth <= 0:
		return errors.New("catalog: starter_player.max_health must be positive")
	}
	for _, r := range c.Recipes {
		if r.ID == "" {
			return errors.New("catalog: recipe without id")
		}
	}
	return nil
}
