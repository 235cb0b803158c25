package debugstat

type StatValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// StatType groups the values of every provider reporting the same type
type StatType struct {
	Type   string      `json:"type"`
	Values []StatValue `json:"values"`
}

type StatSummary struct {
	Stats []StatType `json:"statTypes"`
}
