package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/products"
	"github.com/PabloPavan/varejao_api/internal/users"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxBodyBytes = 1 << 20

	msgInvalidJSON        = "JSON inválido"
	msgInvalidRequest     = "Requisição inválida"
	msgRegisterRequired   = "Nome, e-mail e senha são obrigatórios"
	msgInvalidEmail       = "E-mail inválido"
	msgLoginRequired      = "E-mail e senha são obrigatórios"
	msgProductRequired    = "Nome e preço são obrigatórios"
	msgNegativeValues     = "Preço e quantidade não podem ser negativos"
	msgCheckoutIncomplete = "Dados incompletos para checkout"
	msgPasswordTooLong    = "Senha muito longa"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
	validate.RegisterValidation("trimmedemail", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		email := strings.TrimSpace(field.String())
		if email == "" {
			return false
		}
		if len(email) > 254 {
			return false
		}
		return validate.Var(email, "email") == nil
	})
	validate.RegisterValidation("passwordbytes", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return len(field.String()) <= users.MaxPasswordBytes
	})
}

// decodeJSON reads a single JSON document into dst. A missing body decodes
// as the zero value so required-field checks report the friendlier message.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(apperrors.KindInvalidInput, msgInvalidJSON, err)
	}
	return nil
}

type RegisterDTO struct {
	Name     string `json:"name" validate:"required,notblank,max=200" example:"Maria Silva"`
	Email    string `json:"email" validate:"required,notblank,trimmedemail" example:"maria@email.com"`
	Password string `json:"password" validate:"required,notblank,passwordbytes" example:"segredo123"`
}

func (r *RegisterDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Name": {
				"required": msgRegisterRequired,
				"notblank": msgRegisterRequired,
				"max":      "Nome muito longo",
			},
			"Email": {
				"required":     msgRegisterRequired,
				"notblank":     msgRegisterRequired,
				"trimmedemail": msgInvalidEmail,
			},
			"Password": {
				"required":      msgRegisterRequired,
				"notblank":      msgRegisterRequired,
				"passwordbytes": msgPasswordTooLong,
			},
		}, msgInvalidRequest)
	}
	return nil
}

func (r *RegisterDTO) Input() users.RegisterInput {
	return users.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,notblank" example:"maria@email.com"`
	Password string `json:"password" validate:"required" example:"segredo123"`
}

func (r *LoginDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Email":    {"*": msgLoginRequired},
			"Password": {"*": msgLoginRequired},
		}, msgInvalidRequest)
	}
	return nil
}

type ProductCreateDTO struct {
	Name     string           `json:"name" validate:"required,notblank,max=200" example:"Arroz 5kg"`
	Price    *decimal.Decimal `json:"price" validate:"required" swaggertype:"number" example:"24.9"`
	Quantity *int             `json:"quantity,omitempty" validate:"omitempty,min=0" example:"10"`
	ImageURL *string          `json:"image_url,omitempty" example:"https://cdn.example.com/arroz.png"`
}

func (r *ProductCreateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Name": {
				"required": msgProductRequired,
				"notblank": msgProductRequired,
				"max":      "Nome muito longo",
			},
			"Price":    {"required": msgProductRequired},
			"Quantity": {"min": msgNegativeValues},
		}, msgInvalidRequest)
	}
	return nil
}

func (r *ProductCreateDTO) Input() products.CreateInput {
	return products.CreateInput{Name: r.Name, Price: r.Price, Quantity: r.Quantity, ImageURL: r.ImageURL}
}

type ProductUpdateDTO struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,notblank,max=200" example:"Arroz 5kg"`
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"number" example:"22.5"`
	Quantity *int             `json:"quantity,omitempty" validate:"omitempty,min=0" example:"8"`
	ImageURL *string          `json:"image_url,omitempty"`
}

func (r *ProductUpdateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Name": {
				"notblank": "Nome não pode ficar em branco",
				"max":      "Nome muito longo",
			},
			"Quantity": {"min": msgNegativeValues},
		}, msgInvalidRequest)
	}
	if r.Price != nil && r.Price.IsNegative() {
		return apperrors.New(apperrors.KindInvalidInput, msgNegativeValues)
	}
	return nil
}

func (r *ProductUpdateDTO) Input() products.UpdateInput {
	return products.UpdateInput{Name: r.Name, Price: r.Price, Quantity: r.Quantity, ImageURL: r.ImageURL}
}

// CheckoutDTO keeps each item as the raw JSON the client sent so the order
// snapshot stores it unchanged.
type CheckoutDTO struct {
	UserEmail  string            `json:"user_email" validate:"required,notblank" example:"a@b.com"`
	TotalPrice *decimal.Decimal  `json:"total_price" validate:"required" swaggertype:"number" example:"19.9"`
	Items      []json.RawMessage `json:"items" validate:"required,min=1" swaggertype:"array,object"`
}

func (r *CheckoutDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"UserEmail":  {"*": msgCheckoutIncomplete},
			"TotalPrice": {"*": msgCheckoutIncomplete},
			"Items":      {"*": msgCheckoutIncomplete},
		}, msgCheckoutIncomplete)
	}
	return nil
}

func (r *CheckoutDTO) Input() orders.CheckoutInput {
	return orders.CheckoutInput{UserEmail: r.UserEmail, TotalPrice: r.TotalPrice, Items: r.Items}
}

type OrderStatusDTO struct {
	Status *string `json:"status,omitempty" example:"Enviado 🚚"`
}

func validationMessage(err error, messages map[string]map[string]string, fallback string) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return apperrors.New(apperrors.KindInvalidInput, fallback)
	}
	for _, valErr := range valErrs {
		if fieldMessages, ok := messages[valErr.Field()]; ok {
			if msg, ok := fieldMessages[valErr.Tag()]; ok {
				return apperrors.New(apperrors.KindInvalidInput, msg)
			}
			if msg, ok := fieldMessages["*"]; ok {
				return apperrors.New(apperrors.KindInvalidInput, msg)
			}
		}
	}
	return apperrors.New(apperrors.KindInvalidInput, fallback)
}
