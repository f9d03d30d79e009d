package models

// ShipmentType classifies what is being moved. Unknown values are tolerated
// and priced as a parcel rather than rejected.
type ShipmentType string

const (
	ShipmentDocument   ShipmentType = "document"
	ShipmentParcel     ShipmentType = "parcel"
	ShipmentCargo      ShipmentType = "cargo"
	ShipmentFreight    ShipmentType = "freight"
	ShipmentHazardous  ShipmentType = "hazardous"
	ShipmentPerishable ShipmentType = "perishable"
)

// DeliveryOption selects the delivery service level.
type DeliveryOption string

const (
	DeliveryStandard  DeliveryOption = "standard"
	DeliveryExpress   DeliveryOption = "express"
	DeliveryOvernight DeliveryOption = "overnight"
)

// SpecialRequirement is an add-on handling instruction with a flat fee.
type SpecialRequirement string

const (
	RequirementFragile               SpecialRequirement = "fragile"
	RequirementTemperatureControlled SpecialRequirement = "temperatureControlled"
	RequirementSignatureRequired     SpecialRequirement = "signatureRequired"
)

// ShipmentInput is everything the quote calculation needs about one shipment.
type ShipmentInput struct {
	ShipmentType        ShipmentType         `json:"shipment_type"`
	WeightKg            float64              `json:"weight_kg"`
	DeclaredValue       Money                `json:"declared_value"`
	PickupRegion        string               `json:"pickup_region"`
	DeliveryRegion      string               `json:"delivery_region"`
	IsExpress           bool                 `json:"is_express"`
	DeliveryOption      DeliveryOption       `json:"delivery_option"`
	SpecialRequirements []SpecialRequirement `json:"special_requirements,omitempty"`
}

// CostBreakdown is the itemized result of a quote. Total always equals the
// exact sum of the seven components.
type CostBreakdown struct {
	BaseRate        Money `json:"base_rate"`
	WeightSurcharge Money `json:"weight_surcharge"`
	DistanceCharge  Money `json:"distance_charge"`
	InsuranceFee    Money `json:"insurance_fee"`
	ExpressFee      Money `json:"express_fee"`
	DeliveryFee     Money `json:"delivery_fee"`
	SpecialFees     Money `json:"special_fees"`
	Total           Money `json:"total"`
}

// QuoteRequest is the payload of the public quote endpoint.
type QuoteRequest struct {
	ShipmentType        string   `json:"shipment_type" validate:"required"`
	WeightKg            float64  `json:"weight_kg" validate:"gte=0"`
	DeclaredValue       float64  `json:"declared_value" validate:"gte=0"`
	PickupRegion        string   `json:"pickup_region,omitempty"`
	DeliveryRegion      string   `json:"delivery_region,omitempty"`
	IsExpress           bool     `json:"is_express,omitempty"`
	DeliveryOption      string   `json:"delivery_option,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
}

// ToShipmentInput converts the DTO, rounding the declared value to cents.
func (r QuoteRequest) ToShipmentInput() ShipmentInput {
	reqs := make([]SpecialRequirement, 0, len(r.SpecialRequirements))
	for _, s := range r.SpecialRequirements {
		reqs = append(reqs, SpecialRequirement(s))
	}
	return ShipmentInput{
		ShipmentType:        ShipmentType(r.ShipmentType),
		WeightKg:            r.WeightKg,
		DeclaredValue:       MoneyFromFloat(r.DeclaredValue),
		PickupRegion:        r.PickupRegion,
		DeliveryRegion:      r.DeliveryRegion,
		IsExpress:           r.IsExpress,
		DeliveryOption:      DeliveryOption(r.DeliveryOption),
		SpecialRequirements: reqs,
	}
}
