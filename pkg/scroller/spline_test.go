package scroller

import (
	"math"
	"testing"
)

// TestSplineTables 验证查找表的端点与单调性
func TestSplineTables(t *testing.T) {
	if splinePosition[splineSamples] != 1.0 {
		t.Errorf("splinePosition end = %v, 期望 1", splinePosition[splineSamples])
	}
	if splineTime[splineSamples] != 1.0 {
		t.Errorf("splineTime end = %v, 期望 1", splineTime[splineSamples])
	}
	if splinePosition[0] > 1e-4 || splineTime[0] > 1e-4 {
		t.Errorf("tables should start near 0, got position=%v time=%v", splinePosition[0], splineTime[0])
	}

	for i := 0; i < splineSamples; i++ {
		if splinePosition[i] >= splinePosition[i+1] {
			t.Errorf("splinePosition not increasing at %d: %v >= %v", i, splinePosition[i], splinePosition[i+1])
		}
		if splineTime[i] >= splineTime[i+1] {
			t.Errorf("splineTime not increasing at %d: %v >= %v", i, splineTime[i], splineTime[i+1])
		}
	}
}

// TestSplineTimeIsInverseOfPosition 验证两张表互为逆映射
func TestSplineTimeIsInverseOfPosition(t *testing.T) {
	for i := 1; i < splineSamples; i++ {
		x := float64(i) / splineSamples
		tx := splineTimeAt(x)
		d, _ := splineCoefficients(tx)
		if math.Abs(d-x) > 1e-3 {
			t.Errorf("position(time(%v)) = %v, 期望 %v", x, d, x)
		}
	}
}

func TestSplineCoefficients(t *testing.T) {
	tests := []struct {
		name         string
		t            float64
		wantDistance float64
		wantVelocity float64
	}{
		{"中点", 0.5, 0.85841111, 0.68423},
		{"终点", 1.0, 1.0, 0.0},
		{"超出终点", 1.5, 1.0, 0.0},
		{"负时间", -0.1, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, v := splineCoefficients(tt.t)
			if math.Abs(d-tt.wantDistance) > 1e-6 {
				t.Errorf("distanceCoef(%v) = %v, 期望 %v", tt.t, d, tt.wantDistance)
			}
			if math.Abs(v-tt.wantVelocity) > 1e-6 {
				t.Errorf("velocityCoef(%v) = %v, 期望 %v", tt.t, v, tt.wantVelocity)
			}
		})
	}
}

func TestPhysicalConstants(t *testing.T) {
	if got := PhysicalCoefficient(2.0); math.Abs(got-103780.40346239998) > 1e-6 {
		t.Errorf("PhysicalCoefficient(2.0) = %v, 期望 103780.4034624", got)
	}
	if got := PhysicalCoefficient(1.0) * 2; math.Abs(got-PhysicalCoefficient(2.0)) > 1e-6 {
		t.Errorf("PhysicalCoefficient should scale linearly with density, got %v", got)
	}
	if math.Abs(decelerationRate-2.3582018154259448) > 1e-12 {
		t.Errorf("decelerationRate = %v, 期望 2.3582018154259448", decelerationRate)
	}
}
