package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Popular     bool            `json:"popular"`
	Features    []string        `json:"features"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Size        *string          `json:"size"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Stock       *int             `json:"stock"`
	Popular     *bool            `json:"popular"`
	Features    *[]string        `json:"features"`
}

type CustomProductRequest struct {
	Name        string          `json:"name"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

type ProductList struct {
	Products []models.Product `json:"products"`
	Meta     util.Meta        `json:"meta"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  *int      `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type CartView struct {
	Cart      *models.Cart    `json:"cart"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func NewCartView(c *models.Cart) *CartView {
	v := &CartView{Cart: c, Subtotal: decimal.Zero}
	for _, it := range c.Items {
		v.ItemCount += it.Quantity
		if it.Product != nil {
			v.Subtotal = v.Subtotal.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return v
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress models.Address     `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
}

type UpdateOrderRequest struct {
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
}

type OrderList struct {
	Orders []models.Order `json:"orders"`
	Meta   util.Meta      `json:"meta"`
}

type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Address  *models.Address `json:"address"`
}

type RegisterResult struct {
	Email   string `json:"email"`
	OTPSent bool   `json:"otp_sent"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

type UserList struct {
	Users []models.User `json:"users"`
	Meta  util.Meta     `json:"meta"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type CreateReviewRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewStatusRequest struct {
	Status string `json:"status"`
}

type ReviewList struct {
	Reviews []models.Review `json:"reviews"`
	Meta    util.Meta       `json:"meta"`
}
