package broker

import (
	"github.com/seenimoa/piemail/internal/infra"
	"github.com/seenimoa/piemail/pkg/models"
)

// Wire types for GET /equity/pies/{id}. Pointers distinguish a missing
// field from a zero value; every field we read is required.
//
// Example body (trimmed):
//
//	{"instruments":[{"ticker":"MSFT_US_EQ","expectedShare":1.0000,"currentShare":1.0000,
//	  "ownedQuantity":0.0028064000,"issues":[]}],
//	 "settings":{"id":4667358,"name":"Dynamic Pie","creationDate":1750267596.000000000,
//	  "dividendCashAction":"REINVEST"}}
type t212Pie struct {
	Settings    *t212Settings     `json:"settings"`
	Instruments *[]t212Instrument `json:"instruments"`
}

type t212Settings struct {
	ID           *int64   `json:"id"`
	Name         *string  `json:"name"`
	CreationDate *float64 `json:"creationDate"`
}

type t212Instrument struct {
	Ticker        *string  `json:"ticker"`
	CurrentShare  *float64 `json:"currentShare"`
	ExpectedShare *float64 `json:"expectedShare"`
}

func (p *t212Pie) toModel() (*models.Pie, error) {
	if p.Settings == nil {
		return nil, infra.NewDecodeError(providerName, "missing field %q", "settings")
	}
	if p.Instruments == nil {
		return nil, infra.NewDecodeError(providerName, "missing field %q", "instruments")
	}

	s := p.Settings
	switch {
	case s.ID == nil:
		return nil, infra.NewDecodeError(providerName, "missing field %q", "settings.id")
	case s.Name == nil:
		return nil, infra.NewDecodeError(providerName, "missing field %q", "settings.name")
	case s.CreationDate == nil:
		return nil, infra.NewDecodeError(providerName, "missing field %q", "settings.creationDate")
	}

	pie := &models.Pie{
		Settings: models.PieSettings{
			ID:           *s.ID,
			Name:         *s.Name,
			CreationDate: *s.CreationDate,
		},
		Instruments: make([]models.Holding, 0, len(*p.Instruments)),
	}

	for i, in := range *p.Instruments {
		switch {
		case in.Ticker == nil:
			return nil, infra.NewDecodeError(providerName, "instruments[%d]: missing field %q", i, "ticker")
		case in.CurrentShare == nil:
			return nil, infra.NewDecodeError(providerName, "instruments[%d]: missing field %q", i, "currentShare")
		case in.ExpectedShare == nil:
			return nil, infra.NewDecodeError(providerName, "instruments[%d]: missing field %q", i, "expectedShare")
		}
		pie.Instruments = append(pie.Instruments, models.Holding{
			Ticker:        *in.Ticker,
			CurrentShare:  *in.CurrentShare,
			ExpectedShare: *in.ExpectedShare,
		})
	}
	return pie, nil
}
