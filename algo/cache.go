package algo

import "sync"

// 结果缓存: 网格和纵断面都是输入的确定性纯函数，
// 按 (数据集版本, 参数) 记忆化是安全的；数据集切换时按版本整代清空

// 每张表的条目上限; 已满时写入新键会先整表清空，再重新积累
const maxCacheEntries = 256

// MeshKey 地形网格的缓存键
type MeshKey struct {
	Version    string // 数据集版本标识
	Resolution int
}

// ProfileKey 管线纵断面的缓存键
type ProfileKey struct {
	Version string
	Sag     float64
	Samples int
}

// ResultCache 计算结果的并发安全缓存
// 只接受当前激活版本的写入: 数据集切换后，慢请求携带旧版本号的写入被直接丢弃
type ResultCache struct {
	mu       sync.RWMutex
	version  string
	meshes   map[MeshKey]*TerrainMesh
	profiles map[ProfileKey]*AlignmentProfile
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		meshes:   make(map[MeshKey]*TerrainMesh),
		profiles: make(map[ProfileKey]*AlignmentProfile),
	}
}

// Activate 声明当前激活的数据集版本，并清掉其他版本遗留的全部条目
// 数据集被替换或重新激活时调用
func (c *ResultCache) Activate(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version = version
	for k := range c.meshes {
		if k.Version != version {
			delete(c.meshes, k)
		}
	}
	for k := range c.profiles {
		if k.Version != version {
			delete(c.profiles, k)
		}
	}
}

// Mesh 读取缓存的地形网格
func (c *ResultCache) Mesh(key MeshKey) (*TerrainMesh, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.meshes[key]
	return m, ok
}

// PutMesh 写入地形网格 (缓存的网格被视为只读，调用方不得再修改)
// 键的版本与当前激活版本不一致时丢弃
func (c *ResultCache) PutMesh(key MeshKey, m *TerrainMesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key.Version != c.version {
		return
	}
	if _, ok := c.meshes[key]; !ok && len(c.meshes) >= maxCacheEntries {
		c.meshes = make(map[MeshKey]*TerrainMesh)
	}
	c.meshes[key] = m
}

// Profile 读取缓存的纵断面
func (c *ResultCache) Profile(key ProfileKey) (*AlignmentProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[key]
	return p, ok
}

// PutProfile 写入纵断面，键的版本与当前激活版本不一致时丢弃
func (c *ResultCache) PutProfile(key ProfileKey, p *AlignmentProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key.Version != c.version {
		return
	}
	if _, ok := c.profiles[key]; !ok && len(c.profiles) >= maxCacheEntries {
		c.profiles = make(map[ProfileKey]*AlignmentProfile)
	}
	c.profiles[key] = p
}
