package serverconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_文件覆盖默认值(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yml")
	raw := "realm:\n  port: 9100\ngame:\n  territory_radius_m: 300\nbackend:\n  save_store: postgres\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, false, nil); err != nil {
		t.Fatalf("期望加载成功: %v", err)
	}
	if Conf.Realm.Port != 9100 || Conf.Game.TerritoryRadiusM != 300 || Conf.Backend.SaveStore != "postgres" {
		t.Fatalf("期望读到文件值, got=%+v", Conf)
	}
	if Conf.Game.EdgeBufferM != 20 || Conf.Backend.OwnerUsername != DefaultOwnerUsername || Conf.Realm.Tick() <= 0 {
		t.Fatalf("期望缺省字段保持默认, got=%+v", Conf)
	}
}

func TestLoad_文件不存在(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml"), false, nil); err == nil {
		t.Fatalf("期望报错")
	}
}

func TestPersistence_内存本地存档(t *testing.T) {
	if !(PersistenceConfig{LocalPath: "memory"}).MemoryLocal() || (PersistenceConfig{LocalPath: "a.db"}).MemoryLocal() {
		t.Fatalf("期望 memory 判定正确")
	}
}
