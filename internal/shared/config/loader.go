package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader 绑定一个配置文件，支持热更新。
// out 在 Load 之前应已填好默认值，文件里缺省的字段保持默认。
type Loader struct {
	v    *viper.Viper
	path string

	mu       sync.Mutex
	onChange []func()
}

func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	return &Loader{v: v, path: path}
}

func (l *Loader) Path() string {
	return l.path
}

// Load 读取并解码到 out。
func (l *Loader) Load(out any) error {
	if !fileExist(l.path) {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, l.path)
	}
	if err := l.v.ReadInConfig(); err != nil {
		return err
	}
	return l.v.Unmarshal(out)
}

// Watch 开启热更新，文件变化时重新解码到 out 再回调。
// 解码失败保留旧值并把错误交给 onErr。
func (l *Loader) Watch(out any, onErr func(error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if err := l.v.Unmarshal(out); err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		for _, fn := range l.onChange {
			fn()
		}
	})
	l.v.WatchConfig()
}

func (l *Loader) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}
