package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/tutors"
)

const dateTimeLayout = "2006-01-02 15:04"

// table escribe columnas alineadas; la fila seleccionada va marcada con *.
func table(w io.Writer, headers []string, rows [][]string, selected []bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t"+strings.Join(headers, "\t"))
	for i, r := range rows {
		mark := ""
		if i < len(selected) && selected[i] {
			mark = "*"
		}
		fmt.Fprintln(tw, mark+"\t"+strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// renderPage escribe las filas visibles y un pie con el estado de la lista.
func renderPage[T any](w io.Writer, p *Page[T], headers []string, row func(T) []string) error {
	switch p.State() {
	case StateLoading, StateIdle:
		_, err := fmt.Fprintln(w, "carregando...")
		return err
	case StateError:
		_, err := fmt.Fprintf(w, "erro: %v\n", p.Err())
		return err
	}

	visible := p.Visible()
	if len(visible) == 0 {
		_, err := fmt.Fprintln(w, "nenhum registro encontrado")
		return err
	}
	rows := make([][]string, 0, len(visible))
	sel := make([]bool, 0, len(visible))
	for _, it := range visible {
		rows = append(rows, row(it))
		sel = append(sel, p.id(it) == p.SelectedID())
	}
	if err := table(w, headers, rows, sel); err != nil {
		return err
	}
	if p.HasMore() {
		_, err := fmt.Fprintf(w, "mostrando %d de %d (use -all)\n", len(visible), len(p.Filtered()))
		return err
	}
	return nil
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func optText(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func (s *TutorsScreen) Render(w io.Writer) error {
	return renderPage(w, s.Page, []string{"ID", "NOME", "TELEFONE", "EMAIL"}, func(t tutors.Response) []string {
		return []string{itoa(t.ID), t.Nome, t.Telefone, t.Email}
	})
}

func (s *EmployeesScreen) Render(w io.Writer) error {
	return renderPage(w, s.Page, []string{"ID", "NOME", "CARGO", "TELEFONE", "EMAIL"}, func(e employees.Response) []string {
		return []string{itoa(e.ID), e.Nome, e.Cargo, e.Telefone, e.Email}
	})
}

func (s *AnimalsScreen) Render(w io.Writer) error {
	return renderPage(w, s.Page, []string{"ID", "NOME", "ESPECIE", "RACA", "PESO", "STATUS", "TUTOR"}, func(a AnimalRow) []string {
		return []string{itoa(a.ID), a.Nome, a.Especie, a.Raca, a.Peso, string(a.StatusAnimal), a.TutorName}
	})
}

func (s *AppointmentsScreen) Render(w io.Writer) error {
	return renderPage(w, s.Page, []string{"ID", "DATA", "ANIMAL", "FUNCIONARIO", "STATUS", "PRECO", "DIAGNOSTICO"}, func(a AppointmentRow) []string {
		return []string{itoa(a.ID), a.DataHora.Format(dateTimeLayout), a.AnimalName, a.EmployeeName,
			string(a.StatusConsulta), a.Preco, optText(a.Diagnostico)}
	})
}

func (s *PaymentsScreen) Render(w io.Writer) error {
	return renderPage(w, s.Page, []string{"ID", "CONSULTA", "ANIMAL", "VALOR", "METODO", "STATUS", "DATA"}, func(p PaymentRow) []string {
		return []string{itoa(p.ID), itoa(p.IDConsulta), p.AnimalName, p.Valor, string(p.Metodo),
			string(p.StatusPagamento), p.DataPagamento.Format(dateTimeLayout)}
	})
}

func (d Dashboard) Render(w io.Writer) error {
	fmt.Fprintf(w, "Animais: %d  Tutores: %d  Funcionarios: %d  Pagamentos pendentes: %d\n\n",
		d.TotalAnimals, d.TotalTutors, d.TotalEmployees, d.PendingPayments)
	if len(d.Today) == 0 {
		_, err := fmt.Fprintln(w, "nenhuma consulta hoje")
		return err
	}
	rows := make([][]string, 0, len(d.Today))
	for _, a := range d.Today {
		rows = append(rows, []string{a.DataHora.Local().Format("15:04"), a.AnimalName, a.EmployeeName, string(a.StatusConsulta)})
	}
	return table(w, []string{"HORA", "ANIMAL", "FUNCIONARIO", "STATUS"}, rows, nil)
}
