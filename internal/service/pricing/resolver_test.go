package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

func massage() *domain.Service {
	return &domain.Service{
		ID:       "svc-1",
		Name:     "Thai massage",
		Price:    500,
		Duration: 60,
		Active:   true,
		AddOns: []domain.AddOn{
			{Name: "Hot stones", Price: 100, Duration: 15},
			{Name: "Aroma oil", Price: 50, Duration: 0},
		},
	}
}

func tiered() *domain.Service {
	s := massage()
	s.Areas = []domain.ServiceArea{
		{Name: "Back", Price: 700, Duration: 45, Packages: []domain.ServicePackage{
			{Name: "5 sessions", Price: 3000, Duration: 45},
		}},
		{Name: "Full body", Price: 1200, Duration: 90},
	}
	return s
}

func TestResolveService_BookingWithAddOnAndCoupon(t *testing.T) {
	quote := ResolveService(massage(), ServiceSelection{AddOns: []string{"Hot stones"}})

	assert.Equal(t, int64(500), quote.Price)
	assert.Equal(t, int64(600), quote.Subtotal)
	assert.Equal(t, 75, quote.Duration)
	assert.Equal(t, 75, quote.Snapshot.Duration)
	assert.Len(t, quote.Snapshot.AddOns, 1)

	payment := Finalize(quote.Subtotal, 60)
	assert.Equal(t, int64(600), payment.OriginalPrice)
	assert.Equal(t, int64(60), payment.Discount)
	assert.Equal(t, int64(540), payment.TotalPrice)
}

func TestResolveService_UnknownAddOnIgnored(t *testing.T) {
	quote := ResolveService(massage(), ServiceSelection{AddOns: []string{"Gold leaf", "Aroma oil"}})

	assert.Equal(t, int64(550), quote.Subtotal)
	assert.Equal(t, 60, quote.Duration)
}

func TestResolveService_AreaTiers(t *testing.T) {
	tests := []struct {
		name         string
		area         *int
		pkg          *int
		wantPrice    int64
		wantDuration int
		wantArea     string
		wantPackage  string
	}{
		{name: "area selected", area: ptr.Ptr(1), wantPrice: 1200, wantDuration: 90, wantArea: "Full body"},
		{name: "package selected", area: ptr.Ptr(0), pkg: ptr.Ptr(0), wantPrice: 3000, wantDuration: 45, wantArea: "Back", wantPackage: "5 sessions"},
		{name: "package out of range keeps area", area: ptr.Ptr(0), pkg: ptr.Ptr(3), wantPrice: 700, wantDuration: 45, wantArea: "Back"},
		{name: "area out of range falls back to base", area: ptr.Ptr(7), pkg: ptr.Ptr(0), wantPrice: 500, wantDuration: 60},
		{name: "negative area index falls back to base", area: ptr.Ptr(-1), wantPrice: 500, wantDuration: 60},
		{name: "no area index falls back to base", wantPrice: 500, wantDuration: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := ResolveService(tiered(), ServiceSelection{AreaIndex: tt.area, PackageIndex: tt.pkg})

			assert.Equal(t, tt.wantPrice, quote.Price)
			assert.Equal(t, tt.wantPrice, quote.Subtotal)
			assert.Equal(t, tt.wantDuration, quote.Duration)
			assert.Equal(t, tt.wantArea, quote.Snapshot.AreaName)
			assert.Equal(t, tt.wantPackage, quote.Snapshot.PackageName)
		})
	}
}

func TestResolveService_AreaOptions(t *testing.T) {
	s := massage()
	s.AreaOptions = []domain.AreaOptionGroup{
		{AreaName: "Face", Options: []domain.AreaOption{{Name: "Mask", Price: 200, Duration: 20}}},
		{AreaName: "Feet", Options: []domain.AreaOption{{Name: "Scrub", Price: 150, Duration: 25}}},
	}

	quote := ResolveService(s, ServiceSelection{
		Options: []domain.OptionSelection{
			{AreaName: "Face", OptionName: "Mask"},
			{AreaName: "Feet", OptionName: "Scrub"},
			{AreaName: "Face", OptionName: "Scrub"},
		},
		AddOns: []string{"Hot stones"},
	})

	assert.Equal(t, int64(350), quote.Price)
	assert.Equal(t, int64(450), quote.Subtotal)
	assert.Equal(t, 60, quote.Duration)
	assert.Len(t, quote.Snapshot.SelectedOptions, 2)
}

func TestResolveService_AreaOptionsNoneMatched(t *testing.T) {
	s := massage()
	s.AreaOptions = []domain.AreaOptionGroup{
		{AreaName: "Face", Options: []domain.AreaOption{{Name: "Mask", Price: 200, Duration: 20}}},
	}

	quote := ResolveService(s, ServiceSelection{})

	assert.Equal(t, int64(0), quote.Subtotal)
	assert.Equal(t, 0, quote.Duration)
}

func TestResolveRoom(t *testing.T) {
	roomType := &domain.RoomType{ID: "deluxe", Name: "Deluxe", BasePrice: 1500}

	tests := []struct {
		name         string
		nights       int
		rooms        int
		caller       CallerTotals
		wantSubtotal int64
		wantDiscount int64
	}{
		{name: "computed", nights: 2, rooms: 2, wantSubtotal: 6000},
		{name: "zero rooms counts as one", nights: 3, rooms: 0, wantSubtotal: 4500},
		{name: "caller original trusted", nights: 2, rooms: 1, caller: CallerTotals{OriginalPrice: 2800, Discount: 300}, wantSubtotal: 2800, wantDiscount: 300},
		{name: "caller total only", nights: 2, rooms: 1, caller: CallerTotals{TotalPrice: 2500, Discount: 500}, wantSubtotal: 3000, wantDiscount: 500},
		{name: "non-positive caller values ignored", nights: 1, rooms: 1, caller: CallerTotals{OriginalPrice: -1, TotalPrice: 0}, wantSubtotal: 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := ResolveRoom(roomType, tt.nights, tt.rooms, tt.caller)
			assert.Equal(t, tt.wantSubtotal, quote.Subtotal)
			assert.Equal(t, tt.wantDiscount, quote.Discount)
			assert.Equal(t, "Deluxe", quote.Snapshot.Name)
		})
	}
}
