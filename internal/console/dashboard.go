package console

import (
	"context"
	"slices"
	"strings"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"

	"golang.org/x/sync/errgroup"
)

type Dashboard struct {
	TotalAnimals    int
	TotalTutors     int
	TotalEmployees  int
	PendingPayments int

	// Today son las consultas del día local de now, por hora ascendente.
	Today []AppointmentRow
}

// LoadDashboard junta las cinco colecciones en paralelo.
func LoadDashboard(ctx context.Context, c *Client, now time.Time) (Dashboard, error) {
	var (
		as []animals.Response
		ts []tutors.Response
		es []employees.Response
		ps []payments.Response
		cs []appointments.DetailedResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { as, err = c.Animals(gctx); return })
	g.Go(func() (err error) { ts, err = c.Tutors(gctx); return })
	g.Go(func() (err error) { es, err = c.Employees(gctx); return })
	g.Go(func() (err error) { ps, err = c.Payments(gctx); return })
	g.Go(func() (err error) { cs, err = c.Appointments(gctx); return })
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		TotalAnimals:   len(as),
		TotalTutors:    len(ts),
		TotalEmployees: len(es),
	}
	for _, p := range ps {
		if strings.EqualFold(string(p.StatusPagamento), string(payments.StatusPending)) {
			d.PendingPayments++
		}
	}

	today := make([]appointments.DetailedResponse, 0)
	for _, a := range cs {
		if sameDay(a.DataHora, now) {
			today = append(today, a)
		}
	}
	d.Today = joinAppointments(today, as, es)
	slices.SortStableFunc(d.Today, func(x, y AppointmentRow) int {
		return x.DataHora.Compare(y.DataHora)
	})
	return d, nil
}

func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
