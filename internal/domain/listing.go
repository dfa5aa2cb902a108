package domain

import "time"

// Listing types.
const (
	ListingTypeService = "service"
	ListingTypeProduct = "product"
)

// MaxListingImages caps the gallery size per listing.
const MaxListingImages = 6

type Listing struct {
	ListingID   string `json:"id" dynamodbav:"listing_id"`
	UserID      string `json:"-" dynamodbav:"user_id"`
	UserName    string `json:"userName" dynamodbav:"user_name"`
	CollegeName string `json:"collegeName" dynamodbav:"college_name"`

	Type        string `json:"type" dynamodbav:"type"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`

	Price         *float64 `json:"price" dynamodbav:"price,omitempty"`
	Category      string   `json:"category,omitempty" dynamodbav:"category"`
	ImageURL      string   `json:"imageUrl,omitempty" dynamodbav:"image_url"`
	Images        []string `json:"images,omitempty" dynamodbav:"images"`
	Condition     string   `json:"condition,omitempty" dynamodbav:"condition"`
	BrandModel    string   `json:"brandModel,omitempty" dynamodbav:"brand_model"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" dynamodbav:"original_price,omitempty"`
	Negotiable    bool     `json:"negotiable" dynamodbav:"negotiable"`
	ContactPhone  string   `json:"contactPhone,omitempty" dynamodbav:"contact_phone"`
	Skills        string   `json:"skills,omitempty" dynamodbav:"skills"`
	PricingType   string   `json:"pricingType,omitempty" dynamodbav:"pricing_type"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type CreateListingRequest struct {
	Type        string `json:"type" validate:"required,oneof=service product"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`

	Price         *float64 `json:"price"`
	Category      string   `json:"category"`
	ImageURL      string   `json:"imageUrl"`
	Images        []string `json:"images"`
	Condition     string   `json:"condition"`
	BrandModel    string   `json:"brandModel"`
	OriginalPrice *float64 `json:"originalPrice"`
	Negotiable    bool     `json:"negotiable"`
	ContactPhone  string   `json:"contactPhone"`
	Skills        string   `json:"skills"`
	PricingType   string   `json:"pricingType"`
}

type UpdateListingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`

	Price         *float64  `json:"price"`
	Category      *string   `json:"category"`
	ImageURL      *string   `json:"imageUrl"`
	Images        *[]string `json:"images"`
	Condition     *string   `json:"condition"`
	BrandModel    *string   `json:"brandModel"`
	OriginalPrice *float64  `json:"originalPrice"`
	Negotiable    *bool     `json:"negotiable"`
	ContactPhone  *string   `json:"contactPhone"`
	Skills        *string   `json:"skills"`
	PricingType   *string   `json:"pricingType"`
}
