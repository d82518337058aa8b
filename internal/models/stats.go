package models

// StatsSummary holds raw structural counts for one model. Maps are never nil.
// Degree histograms map a degree to the number of activities having it.
type StatsSummary struct {
	ModelID                 string         `json:"model_id" yaml:"model_id"`
	ActivityCount           int            `json:"activity_count" yaml:"activity_count"`
	ActivitiesByFunction    map[string]int `json:"activities_by_function" yaml:"activities_by_function"`
	EdgeCount               int            `json:"edge_count" yaml:"edge_count"`
	EdgesByRelation         map[string]int `json:"edges_by_relation" yaml:"edges_by_relation"`
	InDegree                map[int]int    `json:"in_degree" yaml:"in_degree"`
	OutDegree               map[int]int    `json:"out_degree" yaml:"out_degree"`
	ComponentCount          int            `json:"component_count" yaml:"component_count"`
	ActivitiesByEnablerKind map[string]int `json:"activities_by_enabler_kind" yaml:"activities_by_enabler_kind"`
	ActivitiesByLocation    map[string]int `json:"activities_by_location" yaml:"activities_by_location"`
	ActivitiesByProcess     map[string]int `json:"activities_by_process" yaml:"activities_by_process"`
}

// Report bundles both analyses of one model.
type Report struct {
	ModelID  string       `json:"model_id" yaml:"model_id"`
	Title    string       `json:"title" yaml:"title"`
	Findings []Finding    `json:"findings" yaml:"findings"`
	Stats    StatsSummary `json:"stats" yaml:"stats"`
}
