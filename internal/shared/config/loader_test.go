package config

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `mapstructure:"name"`
	Port  int    `mapstructure:"port"`
	Level string `mapstructure:"level"`
}

func TestLoader_缺省字段保留默认值(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yml")
	if err := os.WriteFile(path, []byte("name: realm\nport: 8090\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := sample{Level: "info"}
	if err := NewLoader(path).Load(&out); err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if out.Name != "realm" || out.Port != 8090 {
		t.Fatalf("期望读到文件内容, got=%+v", out)
	}
	if out.Level != "info" {
		t.Fatalf("期望缺省字段保持默认, got=%q", out.Level)
	}
}

func TestResolve_向上查找configs目录(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "configs", "conf.yml")
	if err := os.WriteFile(want, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := findConfigUpward(nested)
	if err != nil || got != want {
		t.Fatalf("期望找到 %s, got=%s err=%v", want, got, err)
	}
}

func TestResolve_显式路径不存在报错(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("期望不存在的显式路径返回错误")
	}
}
