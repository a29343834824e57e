// Command vetctl es el cliente de consola de la clínica: lista, busca,
// crea y borra registros contra la API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"vet-clinic/internal/config"
	"vet-clinic/internal/console"
	"vet-clinic/internal/platform/httpclient"
	"vet-clinic/internal/platform/logger"
)

const usage = `uso: vetctl <comando> [flags]

comandos:
  dashboard                          totais e consultas de hoje
  tutores|animais|funcionarios|
  consultas|pagamentos [-q texto] [-all] [-sel id]
                                     lista; -sel mostra o detalhe do item
  novo-tutor -nome N -telefone T -email E
  remover <tutores|animais|funcionarios|consultas|pagamentos> <id>

ambiente: VETCTL_API_URL, VETCTL_TIMEOUT, VETCTL_LOG_LEVEL
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		App:    "vetctl",
		Output: stderr,
	})

	client, err := console.NewClient(cfg.APIURL, cfg.Timeout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, rest := args[0], args[1:]
	if err := dispatch(ctx, client, cmd, rest, stdout); err != nil {
		report(log, stderr, cmd, err)
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, c *console.Client, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "dashboard":
		d, err := console.LoadDashboard(ctx, c, time.Now())
		if err != nil {
			return err
		}
		return d.Render(out)
	case "tutores", "animais", "funcionarios", "consultas", "pagamentos":
		return list(ctx, c, cmd, args, out)
	case "novo-tutor":
		return newTutor(ctx, c, args, out)
	case "remover":
		return remove(ctx, c, args, out)
	default:
		return fmt.Errorf("comando desconhecido %q\n\n%s", cmd, usage)
	}
}

// screen es lo común a las cinco pantallas.
type screen interface {
	Refresh(ctx context.Context) error
	Render(w io.Writer) error
}

// pageControls aplica búsqueda, show-all y selección sobre cualquier Page.
type pageControls interface {
	Search(q string)
	ToggleShowAll()
	Toggle(id int64)
}

type view struct {
	screen
	page   pageControls
	detail func(ctx context.Context) (any, error)
	remove func(ctx context.Context) error
}

func newView(c *console.Client, name string) (view, bool) {
	switch name {
	case "tutores":
		s := console.NewTutorsScreen(c)
		return view{s, s.Page, func(ctx context.Context) (any, error) { return s.SelectedAnimals(ctx) }, s.Delete}, true
	case "animais":
		s := console.NewAnimalsScreen(c)
		return view{s, s.Page, func(ctx context.Context) (any, error) { return s.SelectedAppointments(ctx) }, s.Delete}, true
	case "funcionarios":
		s := console.NewEmployeesScreen(c)
		return view{s, s.Page, func(ctx context.Context) (any, error) { return s.SelectedAppointments(ctx) }, s.Delete}, true
	case "consultas":
		s := console.NewAppointmentsScreen(c)
		return view{s, s.Page, func(ctx context.Context) (any, error) { return s.SelectedPayment(ctx) }, s.Delete}, true
	case "pagamentos":
		s := console.NewPaymentsScreen(c)
		return view{s, s.Page, nil, s.Delete}, true
	}
	return view{}, false
}

func list(ctx context.Context, c *console.Client, name string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	q := fs.String("q", "", "busca por nome ou id")
	all := fs.Bool("all", false, "mostrar todos")
	sel := fs.Int64("sel", 0, "id a selecionar")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, _ := newView(c, name)
	if err := v.Refresh(ctx); err != nil {
		return err
	}
	v.page.Search(*q)
	if *all {
		v.page.ToggleShowAll()
	}
	if *sel > 0 {
		v.page.Toggle(*sel)
	}
	if err := v.Render(out); err != nil {
		return err
	}

	if *sel > 0 && v.detail != nil {
		d, err := v.detail(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\ndetalhe %d: %+v\n", *sel, d)
	}
	return nil
}

func newTutor(ctx context.Context, c *console.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("novo-tutor", flag.ContinueOnError)
	var f console.TutorForm
	fs.StringVar(&f.Nome, "nome", "", "nome")
	fs.StringVar(&f.Telefone, "telefone", "", "(00) 00000-0000")
	fs.StringVar(&f.Email, "email", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := console.NewTutorsScreen(c)
	t, err := s.Create(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "tutor %d criado\n", t.ID)
	return s.Render(out)
}

func remove(ctx context.Context, c *console.Client, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("uso: vetctl remover <entidade> <id>")
	}
	v, ok := newView(c, args[0])
	if !ok {
		return fmt.Errorf("entidade desconhecida %q", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("id inválido %q", args[1])
	}

	if err := v.Refresh(ctx); err != nil {
		return err
	}
	v.page.Toggle(id)
	if err := v.remove(ctx); err != nil {
		if errors.Is(err, console.ErrNoSelection) {
			return fmt.Errorf("%s: id %d não encontrado", args[0], id)
		}
		return err
	}
	fmt.Fprintf(out, "%s %d removido\n", args[0], id)
	return nil
}

// report muestra el mensaje del servidor y deja el request id en el log.
func report(log logger.Logger, w io.Writer, cmd string, err error) {
	fmt.Fprintln(w, "erro:", err)

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		fields := map[string]any{"cmd": cmd, "status": he.StatusCode, "request_id": he.RequestID}
		if len(he.Details) > 0 {
			fields["details"] = he.Details
		}
		log.Debug("request failed", fields)
	}
}
