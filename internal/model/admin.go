package model

// DashboardStats is the admin overview.
type DashboardStats struct {
	Users        int64 `json:"users"`
	Clients      int64 `json:"clients"`
	Technicians  int64 `json:"technicians"`
	Services     int64 `json:"services"`
	Regions      int64 `json:"regions"`
	Specialties  int64 `json:"specialties"`
	Appointments int64 `json:"appointments"`
}

// RehashResult reports how many stored passwords were converted to bcrypt.
type RehashResult struct {
	Checked  int `json:"checked"`
	Rehashed int `json:"rehashed"`
}

type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
