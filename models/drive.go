// models/drive.go
package models

// Drive is a user persistent drive as reported by the storage API.
type Drive struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Size  int    `json:"size"`
	InUse bool   `json:"in_use"`
}
