package dto

type SchoolDTO struct {
	SchoolID   int64   `json:"school_id"`
	SchoolName *string `json:"school_name"`
	Head       *string `json:"head"`
	Position   *string `json:"position"`
	Address    *string `json:"address"`
}
