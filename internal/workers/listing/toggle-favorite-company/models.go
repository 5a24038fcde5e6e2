// internal/workers/listing/toggle-favorite-company/models.go
package togglefavoritecompany

type Input struct {
	UserID    string `json:"userId" validate:"required"`
	CompanyID string `json:"companyId" validate:"required"`
}

type Output struct {
	CompanyID string   `json:"companyId"`
	Favorite  bool     `json:"favorite"`
	Favorites []string `json:"favorites"`
}
