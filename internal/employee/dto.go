package employee

// Rejection is one entry of the rejections artifact.
type Rejection struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// Partitioned is the validator's split of a run's normalized records.
type Partitioned struct {
	Accepted []Record
	Rejected []Rejection
}
