package httpapi

import (
	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/products"
	"github.com/PabloPavan/varejao_api/internal/users"
	"github.com/shopspring/decimal"
)

func init() {
	// prices are written as JSON numbers (19.9, not "19.9")
	decimal.MarshalJSONWithoutQuotes = true
}

type MessageResponse struct {
	Message string `json:"message" example:"Usuário cadastrado com sucesso!"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"erro interno do servidor"`
}

// UserView is the public projection of a user. It never carries the
// password.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserView(u *users.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

type LoginResponse struct {
	Message string   `json:"message" example:"Login realizado com sucesso!"`
	User    UserView `json:"user"`
}

type ProductResponse struct {
	Message string            `json:"message" example:"Produto criado com sucesso!"`
	Product *products.Product `json:"product"`
}

type OrderResponse struct {
	Message string        `json:"message" example:"Compra realizada com sucesso!"`
	Order   *orders.Order `json:"order"`
}

type EndpointsView struct {
	Users    []string `json:"users"`
	Products []string `json:"products"`
	Orders   []string `json:"orders"`
}

type BannerResponse struct {
	Message   string        `json:"message" example:"API Varejão Online está funcionando!"`
	Version   string        `json:"version" example:"2.0"`
	Endpoints EndpointsView `json:"endpoints"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	DB     string `json:"db" example:"ok"`
	Redis  string `json:"redis" example:"disabled"`
	Time   string `json:"time" example:"2024-03-10T15:30:00Z"`
}
