package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"vet-clinic/internal/router"
)

func newCLI(t *testing.T) func(args ...string) (int, string, string) {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	t.Setenv("VETCTL_API_URL", ts.URL+"/api")

	return func(args ...string) (int, string, string) {
		var out, errOut bytes.Buffer
		code := run(args, &out, &errOut)
		return code, out.String(), errOut.String()
	}
}

func TestVetctl_NewTutorListAndRemove(t *testing.T) {
	cli := newCLI(t)

	code, out, errOut := cli("novo-tutor", "-nome", "Ana Silva", "-telefone", "(11) 91234-5678", "-email", "ana@x.com")
	if code != 0 {
		t.Fatalf("novo-tutor exit=%d stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "tutor 1 criado") || !strings.Contains(out, "Ana Silva") {
		t.Fatalf("unexpected output: %s", out)
	}

	code, out, _ = cli("tutores", "-q", "ana")
	if code != 0 || !strings.Contains(out, "ana@x.com") {
		t.Fatalf("tutores exit=%d out=%s", code, out)
	}

	code, out, _ = cli("tutores", "-sel", "1")
	if code != 0 || !strings.Contains(out, "detalhe 1") {
		t.Fatalf("tutores -sel exit=%d out=%s", code, out)
	}

	code, out, _ = cli("remover", "tutores", "1")
	if code != 0 || !strings.Contains(out, "tutores 1 removido") {
		t.Fatalf("remover exit=%d out=%s", code, out)
	}

	code, _, errOut = cli("remover", "tutores", "1")
	if code != 1 || !strings.Contains(errOut, "não encontrado") {
		t.Fatalf("expected not found, exit=%d stderr=%s", code, errOut)
	}
}

func TestVetctl_InvalidFormIsReported(t *testing.T) {
	cli := newCLI(t)

	code, _, errOut := cli("novo-tutor", "-nome", "Jo", "-telefone", "123", "-email", "jo@x.com")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "telefone") || !strings.Contains(errOut, "nome") {
		t.Fatalf("expected field errors, got %s", errOut)
	}
}

func TestVetctl_DashboardAndUsage(t *testing.T) {
	cli := newCLI(t)

	code, out, _ := cli("dashboard")
	if code != 0 || !strings.Contains(out, "Animais: 0") || !strings.Contains(out, "nenhuma consulta hoje") {
		t.Fatalf("dashboard exit=%d out=%s", code, out)
	}

	code, _, errOut := cli()
	if code != 2 || !strings.Contains(errOut, "uso: vetctl") {
		t.Fatalf("usage exit=%d stderr=%s", code, errOut)
	}

	code, _, errOut = cli("foo")
	if code != 1 || !strings.Contains(errOut, "comando desconhecido") {
		t.Fatalf("unknown cmd exit=%d stderr=%s", code, errOut)
	}
}
