package entities

// Owner is the farmer that owns produce kept in cold storage.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
