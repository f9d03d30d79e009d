package quote

import (
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
	"github.com/abdiaziz77/MizigoSmart-sub000/internal/rates"
)

// Compute derives the itemized cost breakdown for one shipment.
// Pure function: no side effects, never returns an error. Unrecognized
// shipment types price as a parcel, unknown delivery options and regions
// contribute zero, so a half-filled form still gets a live quote.
//
//  1. base rate by shipment type
//  2. weight surcharge      = weightKg x weight rate
//  3. distance charge       = hub-distance km x distance rate
//  4. insurance fee         = max(declared value x fraction, KES 100)
//  5. express fee           = base rate x surcharge fraction, when express
//  6. delivery option flat fee
//  7. sum of special requirement flat fees
//
// Total is the exact sum of the components, in cents.
func Compute(input models.ShipmentInput, table *rates.Table) models.CostBreakdown {
	bd := models.CostBreakdown{}

	bd.BaseRate = table.BaseRate(input.ShipmentType)

	if input.WeightKg > 0 {
		bd.WeightSurcharge = table.WeightRatePerKg().MulFloat(input.WeightKg)
	}

	if input.PickupRegion != "" && input.DeliveryRegion != "" {
		km := table.DistanceBetween(input.PickupRegion, input.DeliveryRegion)
		bd.DistanceCharge = table.DistanceRatePerKm().MulInt(km)
	}

	bd.InsuranceFee = table.InsuranceFee(input.DeclaredValue)

	if input.IsExpress {
		bd.ExpressFee = table.ExpressSurcharge(bd.BaseRate)
	}

	bd.DeliveryFee = table.DeliveryFee(input.DeliveryOption)

	for _, req := range input.SpecialRequirements {
		bd.SpecialFees += table.SpecialFee(req)
	}

	bd.Total = bd.BaseRate + bd.WeightSurcharge + bd.DistanceCharge +
		bd.InsuranceFee + bd.ExpressFee + bd.DeliveryFee + bd.SpecialFees

	return bd
}
