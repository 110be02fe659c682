package scroller

import "math"

// 样条减速模型常量
//
// 位置曲线是一条以 INFLEXION 为拐点的三次样条，
// 由 startTension / endTension 控制两端的张力。
const (
	// gravityDeceleration 越界回弹使用的默认减速度（像素/秒²）
	gravityDeceleration = 2000.0

	// inflexion 样条的拐点（归一化时间）
	inflexion = 0.35

	startTension = 0.5
	endTension   = 1.0

	// splineSamples 查找表的采样段数（表长度为 splineSamples+1）
	splineSamples = 100

	// earthGravity 标准重力加速度（m/s²）
	earthGravity = 9.80665

	// inchesPerMeter 单位换算
	inchesPerMeter = 39.37

	// lookAndFeelTuning 经验手感系数
	lookAndFeelTuning = 0.84
)

// decelerationRate 减速曲线指数，由 ln(0.78)/ln(0.9) 推导
var decelerationRate = math.Log(0.78) / math.Log(0.9)

// splinePosition 归一化时间 → 归一化位置
//
// 第 i 项对应 t = i/100。表由二分法逆解样条参数离线计算得出，
// 末项固定为 1。
var splinePosition = [splineSamples + 1]float64{
	0.00002289, 0.02856100, 0.05705196, 0.08538918, 0.11349556,
	0.14129882, 0.16877157, 0.19581094, 0.22239650, 0.24843842,
	0.27400247, 0.29896768, 0.32333235, 0.34709557, 0.37022493,
	0.39272483, 0.41456989, 0.43582889, 0.45641928, 0.47641030,
	0.49575607, 0.51454932, 0.53272057, 0.55028469, 0.56732743,
	0.58381088, 0.59974787, 0.61519405, 0.63011650, 0.64454840,
	0.65851982, 0.67203977, 0.68509977, 0.69772814, 0.70995066,
	0.72177493, 0.73317840, 0.74423084, 0.75490872, 0.76524713,
	0.77522516, 0.78487683, 0.79420569, 0.80322997, 0.81194287,
	0.82037135, 0.82851879, 0.83637945, 0.84397686, 0.85132280,
	0.85841111, 0.86525341, 0.87185256, 0.87823333, 0.88438921,
	0.89031556, 0.89604654, 0.90155745, 0.90687368, 0.91199517,
	0.91693219, 0.92167471, 0.92624206, 0.93063319, 0.93484770,
	0.93890071, 0.94279035, 0.94652207, 0.95009430, 0.95351767,
	0.95678985, 0.95992431, 0.96291277, 0.96576221, 0.96848187,
	0.97106761, 0.97352319, 0.97585144, 0.97805991, 0.98014857,
	0.98211498, 0.98396775, 0.98570855, 0.98733478, 0.98885472,
	0.99026894, 0.99157710, 0.99278407, 0.99389140, 0.99489873,
	0.99581150, 0.99662748, 0.99735215, 0.99798487, 0.99852850,
	0.99898441, 0.99935376, 0.99963873, 0.99984039, 0.99996028,
	1.00000000,
}

// splineTime 归一化位置 → 归一化时间（splinePosition 的逆映射）
var splineTime = [splineSamples + 1]float64{
	0.00000200, 0.00350089, 0.00700315, 0.01050731, 0.01401389,
	0.01752341, 0.02104418, 0.02456886, 0.02809797, 0.03163971,
	0.03519451, 0.03875515, 0.04233729, 0.04592621, 0.04952994,
	0.05315636, 0.05679837, 0.06045643, 0.06413834, 0.06784446,
	0.07156782, 0.07531617, 0.07909716, 0.08290382, 0.08673654,
	0.09059567, 0.09448880, 0.09841624, 0.10238548, 0.10638246,
	0.11042187, 0.11449677, 0.11861463, 0.12278282, 0.12698736,
	0.13124271, 0.13554909, 0.13989962, 0.14430868, 0.14877643,
	0.15329594, 0.15788149, 0.16251906, 0.16722992, 0.17200706,
	0.17685052, 0.18176734, 0.18675748, 0.19183494, 0.19699255,
	0.20223015, 0.20755459, 0.21297254, 0.21849071, 0.22410869,
	0.22983299, 0.23565609, 0.24159827, 0.24765878, 0.25383674,
	0.26014708, 0.26659843, 0.27317786, 0.27991154, 0.28681155,
	0.29384830, 0.30107492, 0.30847504, 0.31606023, 0.32383979,
	0.33182442, 0.34003745, 0.34848721, 0.35718207, 0.36612940,
	0.37534907, 0.38488633, 0.39473168, 0.40490082, 0.41544681,
	0.42638093, 0.43773771, 0.44955692, 0.46186040, 0.47472891,
	0.48817716, 0.50231052, 0.51714960, 0.53282154, 0.54945517,
	0.56712974, 0.58606945, 0.60644313, 0.62853594, 0.65277419,
	0.67973942, 0.71024420, 0.74580081, 0.78924552, 0.84808199,
	1.00000000,
}

// PhysicalCoefficient 根据屏幕密度计算物理系数
//
// 重力 × 英寸/米 × 每英寸像素 × 手感系数，用于把样条模型缩放到设备像素。
func PhysicalCoefficient(density float64) float64 {
	ppi := density * 160.0
	return earthGravity * inchesPerMeter * ppi * lookAndFeelTuning
}

// splineCoefficients 对归一化时间 t 插值查表
// 返回归一化位置与其对时间的导数
func splineCoefficients(t float64) (distanceCoef, velocityCoef float64) {
	index := int(splineSamples * t)
	if index >= splineSamples || index < 0 {
		return 1.0, 0.0
	}
	tInf := float64(index) / splineSamples
	tSup := float64(index+1) / splineSamples
	dInf := splinePosition[index]
	dSup := splinePosition[index+1]
	velocityCoef = (dSup - dInf) / (tSup - tInf)
	distanceCoef = dInf + (t-tInf)*velocityCoef
	return distanceCoef, velocityCoef
}

// splineTimeAt 返回样条到达归一化位置 x 所需的归一化时间
// x >= 1 时返回 1
func splineTimeAt(x float64) float64 {
	index := int(splineSamples * x)
	if index >= splineSamples || index < 0 {
		return 1.0
	}
	xInf := float64(index) / splineSamples
	xSup := float64(index+1) / splineSamples
	tInf := splineTime[index]
	tSup := splineTime[index+1]
	return tInf + (x-xInf)/(xSup-xInf)*(tSup-tInf)
}
