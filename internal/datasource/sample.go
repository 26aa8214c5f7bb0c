package datasource

import "dashtable/internal/model"

// SampleRecords returns the static collection the dashboard starts with.
func SampleRecords() []model.Record {
	return []model.Record{
		{Primary: "Data1", Summary: []float64{186, 186, 92, 8, 1}},
		{Primary: "Data2", Summary: []float64{95, 95, 31, 11, 0}},
		{Primary: "Data3", Summary: []float64{329, 329, 256, 32, 4}},
		{Primary: "Data4", Summary: []float64{804, 804, 697, 40, 22}},
	}
}
