package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-structure-service/internal/org"
	"org-structure-service/internal/service"
)

func TestRouterEndToEnd(t *testing.T) {
	svc := service.NewOrganizationService(nil, zerolog.Nop())
	handler := NewRouter(RouterConfig{Handler: NewHandler(svc, zerolog.Nop()), Log: zerolog.Nop(), Metrics: true})

	steps := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodPost, "/organizations", `{"id":"ORG001","name":"TechCorp"}`, http.StatusCreated},
		{http.MethodPost, "/organizations/ORG001/departments", `{"id":"DEPT001","name":"Engineering"}`, http.StatusCreated},
		{http.MethodPost, "/organizations/ORG001/departments/DEPT001/employees", `{"id":"EMP001","name":"Jane Doe","email":"jane@techcorp.com","position":"CTO"}`, http.StatusCreated},
		{http.MethodPost, "/organizations/ORG001/departments/DEPT001/employees", `{"id":"EMP002","name":"John Smith","email":"john@techcorp.com","position":"Senior Engineer","hire_date":"2022-03-01"}`, http.StatusCreated},
		{http.MethodPost, "/organizations/ORG001/departments/DEPT001/employees", `{"id":"EMP001","name":"Jane Again","email":"jane2@techcorp.com","position":"CTO"}`, http.StatusConflict},
		{http.MethodPost, "/organizations/ORG001/departments/DEPT001/employees", `{"id":"EMP003","name":"Bad Mail","email":"bad@localhost","position":"Dev"}`, http.StatusBadRequest},
		{http.MethodPut, "/organizations/ORG001/departments/DEPT001/manager", `{"employee_id":"EMP001"}`, http.StatusOK},
	}
	for _, step := range steps {
		recorder := serve(t, handler, step.method, step.path, step.body)
		require.Equal(t, step.status, recorder.Code, "%s %s: %s", step.method, step.path, recorder.Body.String())
	}

	recorder := serve(t, handler, http.MethodGet, "/organizations/ORG001", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var exported org.OrganizationExport
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&exported))
	assert.Equal(t, 2, exported.TotalEmployees)
	assert.Equal(t, "EMP001", *exported.Departments[0].ManagerID)
	assert.Equal(t, "2022-03-01T00:00:00Z", *exported.Departments[0].Employees[1].HireDate)

	recorder = serve(t, handler, http.MethodGet, "/organizations/ORG001/employees/EMP002", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"John Smith"`)

	recorder = serve(t, handler, http.MethodGet, "/organizations/ORG001/structure", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	lines := strings.Split(strings.TrimSpace(recorder.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "    - Jane Doe (CTO)", lines[2])
	assert.Equal(t, "    - John Smith (Senior Engineer)", lines[3])

	recorder = serve(t, handler, http.MethodDelete, "/organizations/ORG001/departments/DEPT001/employees/EMP001", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)
	recorder = serve(t, handler, http.MethodGet, "/organizations/ORG001", "")
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&exported))
	assert.Nil(t, exported.Departments[0].ManagerID)
	assert.Equal(t, 1, exported.TotalEmployees)

	recorder = serve(t, handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "org_structure_http_request_duration_seconds")
}
