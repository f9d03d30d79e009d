package rates

import (
	"testing"

	"github.com/abdiaziz77/MizigoSmart-sub000/internal/models"
)

func TestDistanceBetweenSymmetry(t *testing.T) {
	table := Default()

	pairs := [][2]string{
		{"Nairobi", "Mombasa"},
		{"Kisumu", "Eldoret"},
		{"Thika", "Malindi"},
	}
	for _, p := range pairs {
		ab := table.DistanceBetween(p[0], p[1])
		ba := table.DistanceBetween(p[1], p[0])
		if ab != ba {
			t.Errorf("DistanceBetween(%s,%s)=%d but reversed=%d", p[0], p[1], ab, ba)
		}
		if ab < 0 {
			t.Errorf("DistanceBetween(%s,%s)=%d; want non-negative", p[0], p[1], ab)
		}
	}

	if d := table.DistanceBetween("Nakuru", "Nakuru"); d != 0 {
		t.Errorf("same-region distance = %d; want 0", d)
	}
}

func TestDistanceBetweenValues(t *testing.T) {
	table := Default()

	if d := table.DistanceBetween("Nairobi", "Mombasa"); d != 485 {
		t.Errorf("Nairobi-Mombasa = %d; want 485", d)
	}
	// Case and surrounding whitespace come straight from form input.
	if d := table.DistanceBetween("  mombasa ", "NAIROBI"); d != 485 {
		t.Errorf("normalized lookup = %d; want 485", d)
	}
}

func TestDistanceBetweenUnknownRegion(t *testing.T) {
	table := Default()

	if d := table.DistanceBetween("Atlantis", "Nairobi"); d != 0 {
		t.Errorf("unknown region distance = %d; want 0", d)
	}
	if d := table.DistanceBetween("", ""); d != 0 {
		t.Errorf("empty region distance = %d; want 0", d)
	}
}

func TestBaseRateFallback(t *testing.T) {
	table := Default()

	if got := table.BaseRate(models.ShipmentParcel); got != models.Shillings(500) {
		t.Errorf("parcel base rate = %s; want KES 500.00", got)
	}
	if got, want := table.BaseRate("livestock"), table.BaseRate(models.ShipmentParcel); got != want {
		t.Errorf("unknown shipment type priced %s; want parcel rate %s", got, want)
	}
}

func TestInsuranceFeeFloor(t *testing.T) {
	table := Default()

	// 1% of 5,000 is 50, below the 100 floor.
	if got := table.InsuranceFee(models.Shillings(5000)); got != models.Shillings(100) {
		t.Errorf("insurance on 5000 = %s; want KES 100.00", got)
	}
	if got := table.InsuranceFee(0); got != models.Shillings(100) {
		t.Errorf("insurance on zero value = %s; want KES 100.00", got)
	}
	if got := table.InsuranceFee(models.Shillings(50000)); got != models.Shillings(500) {
		t.Errorf("insurance on 50000 = %s; want KES 500.00", got)
	}
}

func TestDeliveryFeeDefaults(t *testing.T) {
	table := Default()

	if got := table.DeliveryFee(""); got != models.Shillings(500) {
		t.Errorf("unset delivery option fee = %s; want the standard KES 500.00", got)
	}
	if got := table.DeliveryFee("carrier-pigeon"); got != 0 {
		t.Errorf("unknown delivery option fee = %s; want KES 0.00", got)
	}
}

func TestSpecialFeeLookup(t *testing.T) {
	table := Default()

	if got := table.SpecialFee(models.RequirementTemperatureControlled); got != models.Shillings(800) {
		t.Errorf("temperatureControlled fee = %s; want KES 800.00", got)
	}
	if got := table.SpecialFee("juggling"); got != 0 {
		t.Errorf("unknown requirement fee = %s; want KES 0.00", got)
	}
}

func TestValidateRejectsEmptyCategories(t *testing.T) {
	table := Default()
	table.baseRates = map[string]models.Money{}
	if err := table.Validate(); err == nil {
		t.Error("Validate accepted a card without base rates")
	}

	table = Default()
	delete(table.baseRates, "parcel")
	if err := table.Validate(); err == nil {
		t.Error("Validate accepted a card without the parcel fallback")
	}

	table = Default()
	table.hubDistanceKm = map[string]int64{}
	if err := table.Validate(); err == nil {
		t.Error("Validate accepted a card without hub distances")
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if got := table.BaseRate(models.ShipmentDocument); got != models.Shillings(300) {
		t.Errorf("document base rate = %s; want KES 300.00", got)
	}
}
