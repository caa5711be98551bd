package algo

import "errors"

// 核心计算的哨兵错误
// 网格/插值类错误会让整个地形构建失败；站点类错误由调用方就地吸收，
// 只让管线相关输出缺席，不影响地形重建
var (
	ErrNoSurveyPoints   = errors.New("没有可用的地形测量点")
	ErrResolution       = errors.New("网格分辨率必须是正整数")
	ErrStationsCoincide = errors.New("两个站点的平面位置重合，坡度无定义")
	ErrCurveSamples     = errors.New("曲线采样点数至少为 2")
)
