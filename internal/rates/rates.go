package rates

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

// Table is the immutable rate card the quote calculation reads from.
// Lookups never fail: unknown shipment types price as a parcel, unknown
// delivery options and regions contribute nothing. Construct through
// Default or Load so Validate has run.
type Table struct {
	baseRates                map[string]models.Money
	weightRatePerKg          models.Money
	distanceRatePerKm        models.Money
	insuranceRateFraction    float64
	minimumInsuranceFee      models.Money
	expressSurchargeFraction float64
	deliveryOptionFees       map[string]models.Money
	specialRequirementFees   map[string]models.Money
	hubDistanceKm            map[string]int64
}

// Default returns the compiled-in KES rate card.
func Default() *Table {
	return &Table{
		baseRates: map[string]models.Money{
			"document":   models.Shillings(300),
			"parcel":     models.Shillings(500),
			"cargo":      models.Shillings(1500),
			"freight":    models.Shillings(3000),
			"hazardous":  models.Shillings(5000),
			"perishable": models.Shillings(1200),
		},
		weightRatePerKg:          models.Shillings(50),
		distanceRatePerKm:        models.Shillings(15),
		insuranceRateFraction:    0.01,
		minimumInsuranceFee:      models.Shillings(100),
		expressSurchargeFraction: 0.5,
		deliveryOptionFees: map[string]models.Money{
			"standard":  models.Shillings(500),
			"express":   models.Shillings(1000),
			"overnight": models.Shillings(2000),
		},
		specialRequirementFees: map[string]models.Money{
			"fragile":               models.Shillings(300),
			"temperaturecontrolled": models.Shillings(800),
			"signaturerequired":     models.Shillings(150),
		},
		// Road distance from the Nairobi hub, used for both directions.
		hubDistanceKm: map[string]int64{
			"nairobi":  0,
			"thika":    45,
			"machakos": 65,
			"naivasha": 90,
			"nyeri":    150,
			"nakuru":   160,
			"meru":     225,
			"kericho":  255,
			"eldoret":  310,
			"kisumu":   355,
			"garissa":  370,
			"kitale":   380,
			"kakamega": 395,
			"mombasa":  485,
			"malindi":  605,
		},
	}
}

// fileCard mirrors the optional YAML rate file. Amounts are whole shillings.
type fileCard struct {
	BaseRates                map[string]float64 `mapstructure:"base_rates"`
	WeightRatePerKg          float64            `mapstructure:"weight_rate_per_kg"`
	DistanceRatePerKm        float64            `mapstructure:"distance_rate_per_km"`
	InsuranceRateFraction    float64            `mapstructure:"insurance_rate_fraction"`
	MinimumInsuranceFee      float64            `mapstructure:"minimum_insurance_fee"`
	ExpressSurchargeFraction float64            `mapstructure:"express_surcharge_fraction"`
	DeliveryOptionFees       map[string]float64 `mapstructure:"delivery_option_fees"`
	SpecialRequirementFees   map[string]float64 `mapstructure:"special_requirement_fees"`
	HubDistanceKm            map[string]int64   `mapstructure:"hub_distance_km"`
}

// Load builds the rate card, merging an optional YAML file over the
// defaults. path may be empty. A malformed or incomplete card fails here,
// at startup, never during a user's session.
func Load(path string) (*Table, error) {
	t := Default()
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("rates.Load: read %s: %w", path, err)
		}
		var card fileCard
		if err := v.Unmarshal(&card); err != nil {
			return nil, fmt.Errorf("rates.Load: parse %s: %w", path, err)
		}
		t.apply(card)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("rates.Load: %w", err)
	}
	return t, nil
}

func (t *Table) apply(card fileCard) {
	for k, v := range card.BaseRates {
		t.baseRates[strings.ToLower(k)] = models.MoneyFromFloat(v)
	}
	if card.WeightRatePerKg > 0 {
		t.weightRatePerKg = models.MoneyFromFloat(card.WeightRatePerKg)
	}
	if card.DistanceRatePerKm > 0 {
		t.distanceRatePerKm = models.MoneyFromFloat(card.DistanceRatePerKm)
	}
	if card.InsuranceRateFraction > 0 {
		t.insuranceRateFraction = card.InsuranceRateFraction
	}
	if card.MinimumInsuranceFee > 0 {
		t.minimumInsuranceFee = models.MoneyFromFloat(card.MinimumInsuranceFee)
	}
	if card.ExpressSurchargeFraction > 0 {
		t.expressSurchargeFraction = card.ExpressSurchargeFraction
	}
	for k, v := range card.DeliveryOptionFees {
		t.deliveryOptionFees[strings.ToLower(k)] = models.MoneyFromFloat(v)
	}
	for k, v := range card.SpecialRequirementFees {
		t.specialRequirementFees[strings.ToLower(k)] = models.MoneyFromFloat(v)
	}
	for k, v := range card.HubDistanceKm {
		if v >= 0 {
			t.hubDistanceKm[strings.ToLower(k)] = v
		}
	}
}

// Validate checks that every rate category is populated. Violations are
// configuration mistakes and abort startup.
func (t *Table) Validate() error {
	if len(t.baseRates) == 0 {
		return fmt.Errorf("rate card has no base rates")
	}
	if _, ok := t.baseRates["parcel"]; !ok {
		return fmt.Errorf("rate card is missing the parcel base rate fallback")
	}
	if t.weightRatePerKg <= 0 {
		return fmt.Errorf("rate card has no weight rate")
	}
	if t.distanceRatePerKm <= 0 {
		return fmt.Errorf("rate card has no distance rate")
	}
	if t.insuranceRateFraction <= 0 || t.insuranceRateFraction >= 1 {
		return fmt.Errorf("insurance rate fraction %v out of range (0,1)", t.insuranceRateFraction)
	}
	if len(t.deliveryOptionFees) == 0 {
		return fmt.Errorf("rate card has no delivery option fees")
	}
	if len(t.hubDistanceKm) == 0 {
		return fmt.Errorf("rate card has no hub distances")
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BaseRate returns the base rate for a shipment type, falling back to the
// parcel rate for unrecognized types.
func (t *Table) BaseRate(st models.ShipmentType) models.Money {
	if r, ok := t.baseRates[normalize(string(st))]; ok {
		return r
	}
	return t.baseRates["parcel"]
}

func (t *Table) WeightRatePerKg() models.Money { return t.weightRatePerKg }

func (t *Table) DistanceRatePerKm() models.Money { return t.distanceRatePerKm }

// InsuranceFee applies the insurance fraction to the declared value with the
// fixed KES 100 floor.
func (t *Table) InsuranceFee(declaredValue models.Money) models.Money {
	return models.MaxMoney(declaredValue.MulFloat(t.insuranceRateFraction), t.minimumInsuranceFee)
}

// ExpressSurcharge is the express premium on a given base rate.
func (t *Table) ExpressSurcharge(baseRate models.Money) models.Money {
	return baseRate.MulFloat(t.expressSurchargeFraction)
}

// DeliveryFee returns the flat fee for a delivery option. An unset option
// means standard; an unknown option costs nothing.
func (t *Table) DeliveryFee(opt models.DeliveryOption) models.Money {
	key := normalize(string(opt))
	if key == "" {
		key = "standard"
	}
	return t.deliveryOptionFees[key]
}

// SpecialFee returns the flat fee for one special requirement, 0 if unknown.
func (t *Table) SpecialFee(req models.SpecialRequirement) models.Money {
	return t.specialRequirementFees[normalize(string(req))]
}

// KnownRegion reports whether the region appears in the distance table.
func (t *Table) KnownRegion(region string) bool {
	_, ok := t.hubDistanceKm[normalize(region)]
	return ok
}

// DistanceBetween returns the distance in km between two regions as the
// absolute difference of their hub distances. Unknown regions resolve to 0,
// matching the pricing rule of charging nothing rather than failing.
func (t *Table) DistanceBetween(regionA, regionB string) int64 {
	a, okA := t.hubDistanceKm[normalize(regionA)]
	b, okB := t.hubDistanceKm[normalize(regionB)]
	if !okA || !okB {
		return 0
	}
	if a > b {
		return a - b
	}
	return b - a
}
