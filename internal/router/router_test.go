package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"vet-clinic/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
	}
}

func TestHTTP_CreateTutorScenario(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/tutores", map[string]any{
		"nome":     "Ana Silva",
		"telefone": "(11) 91234-5678",
		"email":    "ana@x.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create tutor, got %d body=%s", st, string(body))
	}

	var tutor map[string]any
	mustJSON(t, body, &tutor)
	id, ok := tutor["id_tutor"].(float64)
	if !ok || id <= 0 || id != float64(int64(id)) {
		t.Fatalf("expected positive integer id_tutor, got %v", tutor["id_tutor"])
	}
	if tutor["nome"] != "Ana Silva" || tutor["telefone"] != "(11) 91234-5678" || tutor["email"] != "ana@x.com" {
		t.Fatalf("unexpected fields: %s", string(body))
	}
	if tutor["createdAt"] == nil || tutor["createdAt"] != tutor["updatedAt"] {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", tutor["createdAt"], tutor["updatedAt"])
	}

	// round-trip
	st, got := doReq(t, ts.URL, "GET", "/api/tutores/"+itoa(id), nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get tutor, got %d", st)
	}
	var fetched map[string]any
	mustJSON(t, got, &fetched)
	for _, k := range []string{"id_tutor", "nome", "telefone", "email", "createdAt", "updatedAt"} {
		if fetched[k] != tutor[k] {
			t.Fatalf("round-trip mismatch on %s: %v != %v", k, fetched[k], tutor[k])
		}
	}

	// nombre exacto
	st, _ = doReq(t, ts.URL, "GET", "/api/tutores/nome/Ana%20Silva", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get by name, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/api/tutores/nome/Ana", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for partial name, got %d", st)
	}
}

func TestHTTP_GetByNameDecodesOnce(t *testing.T) {
	ts := newServer(t)
	createTutor(t, ts.URL, "Loja 50%41", "loja@x.com")
	createTutor(t, ts.URL, "Ana/Bia", "anabia@x.com")
	createEmployee(t, ts.URL, "Dr. 100%", "dr@vet.com")

	for _, path := range []string{
		"/api/tutores/nome/Loja%2050%2541",
		"/api/tutores/nome/Ana%2FBia",
		"/api/funcionarios/nome/Dr.%20100%25",
	} {
		st, body := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s expected 200, got %d body=%s", path, st, string(body))
		}
	}

	st, _ := doReq(t, ts.URL, "GET", "/api/tutores/nome/Loja%2050A", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for the twice-decoded name, got %d", st)
	}
}

func TestHTTP_CreateRequiresFields(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/tutores", map[string]any{"nome": "Ana"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", st)
	}
	var e struct {
		Error   string `json:"error"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	mustJSON(t, body, &e)
	if e.Error != "missing required information" || len(e.Details) == 0 {
		t.Fatalf("unexpected error body: %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/tutores", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", st)
	}
}

func TestHTTP_DuplicateEmailDoesNotCreate(t *testing.T) {
	ts := newServer(t)

	createTutor(t, ts.URL, "Ana", "ana@x.com")
	st, body := doReq(t, ts.URL, "POST", "/api/tutores", map[string]any{
		"nome": "Outra Ana", "telefone": "(11) 1111-2222", "email": "ana@x.com",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 duplicate email, got %d", st)
	}
	expectFieldError(t, body, "email")

	createEmployee(t, ts.URL, "Dr. Paulo", "paulo@vet.com")
	st, _ = doReq(t, ts.URL, "POST", "/api/funcionarios", map[string]any{
		"nome": "Paulo 2", "cargo": "Auxiliar", "telefone": "(11) 1111-2222", "email": "paulo@vet.com",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 duplicate employee email, got %d", st)
	}

	var tutors []map[string]any
	_, body = doReq(t, ts.URL, "GET", "/api/tutores", nil)
	mustJSON(t, body, &tutors)
	if len(tutors) != 1 {
		t.Fatalf("expected 1 tutor, got %d", len(tutors))
	}
}

func TestHTTP_UpdateToTakenEmailIsBadRequest(t *testing.T) {
	ts := newServer(t)

	createEmployee(t, ts.URL, "Dra. Vera", "v2@x.com")
	id := createEmployee(t, ts.URL, "Dr. Paulo", "paulo@vet.com")

	st, body := doReq(t, ts.URL, "PUT", "/api/funcionarios/"+itoa(id), map[string]any{"email": "V2@x.com"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 updating to a taken email, got %d body=%s", st, string(body))
	}
	expectFieldError(t, body, "email")

	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")
	createTutor(t, ts.URL, "Bia", "bia@x.com")
	st, body = doReq(t, ts.URL, "PUT", "/api/tutores/"+itoa(tutorID), map[string]any{"email": "bia@x.com"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 updating tutor to a taken email, got %d body=%s", st, string(body))
	}
	expectFieldError(t, body, "email")

	_, body = doReq(t, ts.URL, "GET", "/api/funcionarios/"+itoa(id), nil)
	var emp map[string]any
	mustJSON(t, body, &emp)
	if emp["email"] != "paulo@vet.com" {
		t.Fatalf("email must not change, got %v", emp["email"])
	}
}

func TestHTTP_AnimalDefaultsAndParentChecks(t *testing.T) {
	ts := newServer(t)
	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")

	st, body := doReq(t, ts.URL, "POST", "/api/animais", animalPayload("Rex", tutorID))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}
	var animal map[string]any
	mustJSON(t, body, &animal)
	if animal["status_animal"] != "Ativo" {
		t.Fatalf("expected default status Ativo, got %v", animal["status_animal"])
	}
	if animal["peso"] != "12.50" || animal["data_nascimento"] != "2020-05-01" {
		t.Fatalf("unexpected peso/data_nascimento: %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/animais", animalPayload("Órfão", 999999))
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown tutor, got %d", st)
	}
	var list []map[string]any
	_, body = doReq(t, ts.URL, "GET", "/api/animais", nil)
	mustJSON(t, body, &list)
	if len(list) != 1 {
		t.Fatalf("expected no row created for unknown tutor, got %d animals", len(list))
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/animais/999999", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown animal, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/api/animais/abc", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 non-integer id, got %d", st)
	}

	p := animalPayload("Mia", tutorID)
	p["status_animal"] = "Voando"
	st, _ = doReq(t, ts.URL, "POST", "/api/animais", p)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown status, got %d", st)
	}
}

func TestHTTP_AnimalsForTutorSortedByName(t *testing.T) {
	ts := newServer(t)
	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")
	for _, n := range []string{"Toby", "Bidu", "Luna"} {
		createAnimal(t, ts.URL, n, tutorID)
	}

	st, body := doReq(t, ts.URL, "GET", "/api/tutores/"+itoa(tutorID)+"/animais", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var list []map[string]any
	mustJSON(t, body, &list)
	if len(list) != 3 || list[0]["nome"] != "Bidu" || list[1]["nome"] != "Luna" || list[2]["nome"] != "Toby" {
		t.Fatalf("expected 3 animals sorted by name, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/tutores/999999/animais", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tutor, got %d", st)
	}
}

func TestHTTP_AppointmentsFlow(t *testing.T) {
	ts := newServer(t)
	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")
	animalID := createAnimal(t, ts.URL, "Rex", tutorID)
	employeeID := createEmployee(t, ts.URL, "Dr. Paulo", "paulo@vet.com")

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var ids []float64
	for i := range 3 {
		id := createAppointment(t, ts.URL, animalID, employeeID, base.Add(time.Duration(i)*24*time.Hour))
		ids = append(ids, id)
	}

	for _, path := range []string{
		"/api/animais/tutor/" + itoa(animalID),
		"/api/animais/" + itoa(animalID) + "/consultas",
		"/api/funcionarios/" + itoa(employeeID) + "/consultas",
	} {
		st, body := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s expected 200, got %d", path, st)
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 3 || list[0]["id_consulta"] != ids[2] || list[2]["id_consulta"] != ids[0] {
			t.Fatalf("GET %s expected 3 appointments by data_hora desc, got %s", path, string(body))
		}
	}

	// listado con joins
	st, body := doReq(t, ts.URL, "GET", "/api/consultas/"+itoa(ids[0]), nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var detailed struct {
		Status string `json:"status_consulta"`
		Preco  string `json:"preco"`
		Animal struct {
			Nome  string `json:"nome"`
			Tutor struct {
				Nome string `json:"nome"`
			} `json:"tutor"`
		} `json:"animal"`
		Funcionario struct {
			Nome string `json:"nome"`
		} `json:"funcionario"`
	}
	mustJSON(t, body, &detailed)
	if detailed.Status != "Agendada" || detailed.Preco != "150.00" || detailed.Animal.Nome != "Rex" ||
		detailed.Animal.Tutor.Nome != "Ana" || detailed.Funcionario.Nome != "Dr. Paulo" {
		t.Fatalf("unexpected detailed appointment: %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/api/consultas/"+itoa(ids[0])+"/animal", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 appointment animal, got %d", st)
	}
	var animal map[string]any
	mustJSON(t, body, &animal)
	if animal["id_animal"] != animalID {
		t.Fatalf("expected animal %v, got %s", animalID, string(body))
	}

	// preco negativo en update
	st, _ = doReq(t, ts.URL, "PUT", "/api/consultas/"+itoa(ids[0]), map[string]any{"preco": -5})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 negative preco on update, got %d", st)
	}

	// funcionario inexistente
	st, _ = doReq(t, ts.URL, "POST", "/api/consultas", map[string]any{
		"id_animal": animalID, "id_funcionario": 999999, "data_hora": base.Format(time.RFC3339), "preco": 10,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown employee, got %d", st)
	}

	// restrict: animal con consultas
	st, _ = doReq(t, ts.URL, "DELETE", "/api/animais/"+itoa(animalID), nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 deleting animal with appointments, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "DELETE", "/api/funcionarios/"+itoa(employeeID), nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 deleting employee with appointments, got %d", st)
	}
}

func TestHTTP_PartialUpdate(t *testing.T) {
	ts := newServer(t)
	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")
	animalID := createAnimal(t, ts.URL, "Rex", tutorID)

	_, before := doReq(t, ts.URL, "GET", "/api/animais/"+itoa(animalID), nil)
	var prev map[string]any
	mustJSON(t, before, &prev)

	st, body := doReq(t, ts.URL, "PUT", "/api/animais/"+itoa(animalID), map[string]any{
		"peso":                "13.2",
		"observacoes_medicas": nil,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}
	var next map[string]any
	mustJSON(t, body, &next)

	if next["peso"] != "13.20" {
		t.Fatalf("expected peso replaced, got %v", next["peso"])
	}
	if next["observacoes_medicas"] != nil {
		t.Fatalf("expected observacoes_medicas cleared, got %v", next["observacoes_medicas"])
	}
	for _, k := range []string{"nome", "especie", "raca", "sexo", "data_nascimento", "id_tutor", "createdAt"} {
		if next[k] != prev[k] {
			t.Fatalf("field %s changed: %v -> %v", k, prev[k], next[k])
		}
	}
	prevUpdated, _ := time.Parse(time.RFC3339Nano, prev["updatedAt"].(string))
	nextUpdated, _ := time.Parse(time.RFC3339Nano, next["updatedAt"].(string))
	if !nextUpdated.After(prevUpdated) {
		t.Fatalf("expected updatedAt to increase: %v -> %v", prevUpdated, nextUpdated)
	}

	st, _ = doReq(t, ts.URL, "PUT", "/api/tutores/"+itoa(tutorID), map[string]any{"telefone": "(11) 3333-4444"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 tutor update, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "PUT", "/api/animais/999999", map[string]any{"nome": "X"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 update unknown animal, got %d", st)
	}
}

func TestHTTP_PaymentsFlow(t *testing.T) {
	ts := newServer(t)
	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")
	animalID := createAnimal(t, ts.URL, "Rex", tutorID)
	employeeID := createEmployee(t, ts.URL, "Dr. Paulo", "paulo@vet.com")
	apptID := createAppointment(t, ts.URL, animalID, employeeID, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	payload := map[string]any{"id_consulta": apptID, "valor": 150, "metodo": "Pix"}
	st, body := doReq(t, ts.URL, "POST", "/api/pagamentos", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 payment, got %d body=%s", st, string(body))
	}
	var p map[string]any
	mustJSON(t, body, &p)
	if p["status_pagamento"] != "Pendente" || p["valor"] != "150.00" || p["data_pagamento"] == nil {
		t.Fatalf("unexpected payment defaults: %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/pagamentos", payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 second payment, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/api/consultas/"+itoa(apptID)+"/pagamento", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 appointment payment, got %d", st)
	}
	var byAppt map[string]any
	mustJSON(t, body, &byAppt)
	if byAppt["id_pagamento"] != p["id_pagamento"] {
		t.Fatalf("expected same payment, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/pagamentos", map[string]any{"id_consulta": 999999, "valor": 1, "metodo": "Pix"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown appointment, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "POST", "/api/pagamentos", map[string]any{"id_consulta": apptID, "valor": 1, "metodo": "Cheque"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown metodo, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/api/consultas/"+itoa(apptID), nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 deleting paid appointment, got %d", st)
	}
}

func TestHTTP_DeleteThenNotFound(t *testing.T) {
	ts := newServer(t)
	tutorID := createTutor(t, ts.URL, "Ana", "ana@x.com")
	animalID := createAnimal(t, ts.URL, "Rex", tutorID)
	employeeID := createEmployee(t, ts.URL, "Dr. Paulo", "paulo@vet.com")
	apptID := createAppointment(t, ts.URL, animalID, employeeID, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	_, body := doReq(t, ts.URL, "POST", "/api/pagamentos", map[string]any{"id_consulta": apptID, "valor": 10, "metodo": "Dinheiro"})
	var p map[string]any
	mustJSON(t, body, &p)
	paymentID := p["id_pagamento"].(float64)

	st, _ := doReq(t, ts.URL, "DELETE", "/api/tutores/"+itoa(tutorID), nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 deleting tutor with animals, got %d", st)
	}

	// de hijos a padres
	for _, path := range []string{
		"/api/pagamentos/" + itoa(paymentID),
		"/api/consultas/" + itoa(apptID),
		"/api/animais/" + itoa(animalID),
		"/api/funcionarios/" + itoa(employeeID),
		"/api/tutores/" + itoa(tutorID),
	} {
		st, body := doReq(t, ts.URL, "DELETE", path, nil)
		if st != http.StatusNoContent || len(body) != 0 {
			t.Fatalf("DELETE %s expected 204 empty body, got %d body=%s", path, st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("GET %s after delete expected 404, got %d", path, st)
		}
	}
}

func createTutor(t *testing.T, baseURL, name, email string) float64 {
	t.Helper()
	return createAndGetID(t, baseURL, "/api/tutores", "id_tutor", map[string]any{
		"nome": name, "telefone": "(11) 91234-5678", "email": email,
	})
}

func createEmployee(t *testing.T, baseURL, name, email string) float64 {
	t.Helper()
	return createAndGetID(t, baseURL, "/api/funcionarios", "id_funcionario", map[string]any{
		"nome": name, "cargo": "Veterinário", "telefone": "(11) 3333-0000", "email": email,
	})
}

func createAnimal(t *testing.T, baseURL, name string, tutorID float64) float64 {
	t.Helper()
	return createAndGetID(t, baseURL, "/api/animais", "id_animal", animalPayload(name, tutorID))
}

func createAppointment(t *testing.T, baseURL string, animalID, employeeID float64, at time.Time) float64 {
	t.Helper()
	return createAndGetID(t, baseURL, "/api/consultas", "id_consulta", map[string]any{
		"id_animal": animalID, "id_funcionario": employeeID, "data_hora": at.Format(time.RFC3339), "preco": "150",
	})
}

func animalPayload(name string, tutorID float64) map[string]any {
	return map[string]any{
		"nome":                name,
		"especie":             "Cachorro",
		"raca":                "SRD",
		"peso":                12.5,
		"sexo":                "M",
		"data_nascimento":     "2020-05-01",
		"observacoes_medicas": "alérgico",
		"id_tutor":            tutorID,
	}
}

func createAndGetID(t *testing.T, baseURL, path, idField string, payload map[string]any) float64 {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, payload)
	if st != http.StatusCreated {
		t.Fatalf("POST %s expected 201, got %d body=%s", path, st, string(body))
	}
	var resp map[string]any
	mustJSON(t, body, &resp)
	id, ok := resp[idField].(float64)
	if !ok || id <= 0 {
		t.Fatalf("POST %s: missing %s body=%s", path, idField, string(body))
	}
	return id
}

func itoa(id float64) string {
	return strconv.FormatInt(int64(id), 10)
}

func expectFieldError(t *testing.T, body []byte, field string) {
	t.Helper()
	var e struct {
		Error   string `json:"error"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	mustJSON(t, body, &e)
	for _, d := range e.Details {
		if d.Field == field {
			return
		}
	}
	t.Fatalf("expected %s in details, got %s", field, string(body))
}

func mustJSON(t *testing.T, body []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
