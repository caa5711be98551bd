package algo

import "testing"

func TestResultCacheMesh(t *testing.T) {
	c := NewResultCache()
	c.Activate("1@100")
	key := MeshKey{Version: "1@100", Resolution: 50}

	if _, ok := c.Mesh(key); ok {
		t.Fatal("空缓存不应命中")
	}

	m := &TerrainMesh{Resolution: 50}
	c.PutMesh(key, m)

	got, ok := c.Mesh(key)
	if !ok || got != m {
		t.Fatal("缓存未返回同一个网格")
	}

	// 不同分辨率是不同条目
	if _, ok := c.Mesh(MeshKey{Version: "1@100", Resolution: 80}); ok {
		t.Fatal("不同分辨率不应命中")
	}
}

func TestResultCacheProfile(t *testing.T) {
	c := NewResultCache()
	c.Activate("1@100")
	key := ProfileKey{Version: "1@100", Sag: 1, Samples: 50}

	p := &AlignmentProfile{Distance: 100}
	c.PutProfile(key, p)

	got, ok := c.Profile(key)
	if !ok || got != p {
		t.Fatal("缓存未返回同一个纵断面")
	}
	if _, ok := c.Profile(ProfileKey{Version: "1@100", Sag: 2, Samples: 50}); ok {
		t.Fatal("不同下垂量不应命中")
	}
}

func TestResultCacheActivate(t *testing.T) {
	c := NewResultCache()
	c.Activate("old")
	c.PutMesh(MeshKey{Version: "old", Resolution: 50}, &TerrainMesh{})
	c.PutProfile(ProfileKey{Version: "old", Sag: 1, Samples: 50}, &AlignmentProfile{})

	c.Activate("new")

	if _, ok := c.Mesh(MeshKey{Version: "old", Resolution: 50}); ok {
		t.Fatal("旧版本网格应被清掉")
	}
	if _, ok := c.Profile(ProfileKey{Version: "old", Sag: 1, Samples: 50}); ok {
		t.Fatal("旧版本纵断面应被清掉")
	}

	// 切换之后，还拿着旧版本号的慢请求写不进缓存
	c.PutMesh(MeshKey{Version: "old", Resolution: 50}, &TerrainMesh{})
	c.PutProfile(ProfileKey{Version: "old", Sag: 1, Samples: 50}, &AlignmentProfile{})
	if _, ok := c.Mesh(MeshKey{Version: "old", Resolution: 50}); ok {
		t.Fatal("过期版本的网格写入应被丢弃")
	}
	if _, ok := c.Profile(ProfileKey{Version: "old", Sag: 1, Samples: 50}); ok {
		t.Fatal("过期版本的纵断面写入应被丢弃")
	}

	// 当前版本照常读写
	m := &TerrainMesh{Resolution: 50}
	c.PutMesh(MeshKey{Version: "new", Resolution: 50}, m)
	if got, ok := c.Mesh(MeshKey{Version: "new", Resolution: 50}); !ok || got != m {
		t.Fatal("当前版本的条目应可命中")
	}
}

func TestResultCacheBounded(t *testing.T) {
	c := NewResultCache()
	c.Activate("v")

	// 扫动 sag 制造大量互不相同的键，条目数始终不超过上限
	for i := 0; i < 3*maxCacheEntries; i++ {
		key := ProfileKey{Version: "v", Sag: float64(i), Samples: 50}
		c.PutProfile(key, &AlignmentProfile{Distance: float64(i)})
		if len(c.profiles) > maxCacheEntries {
			t.Fatalf("条目数 %d 超过上限 %d", len(c.profiles), maxCacheEntries)
		}
	}

	// 最近写入的条目总是可命中的
	last := ProfileKey{Version: "v", Sag: float64(3*maxCacheEntries - 1), Samples: 50}
	if _, ok := c.Profile(last); !ok {
		t.Fatal("最近写入的条目应可命中")
	}
}
