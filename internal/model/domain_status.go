package model

// DomainStatus is one record of the upstream status API.
// DaysLeft and Expires are independently nullable; a nil DaysLeft means unknown, not zero.
type DomainStatus struct {
	Domain   string  `json:"domain"`
	Expires  *string `json:"expires"`
	DaysLeft *int    `json:"days_left"`
	Error    *string `json:"error"`
}

// StatusResponse is the body of GET {apiUrl}/status
type StatusResponse struct {
	Domains []DomainStatus `json:"domains"`
	Updated string         `json:"updated"`
}
