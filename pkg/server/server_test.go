package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/slovlex/pkg/types"
)

func testServer() *Server {
	acts := []types.ParsedAct{
		{
			LawID:     "tz",
			Year:      2005,
			Number:    300,
			Title:     "Trestný zákon",
			FullTitle: "Zákon č. 300/2005 Z. z. Trestný zákon",
			Status:    types.StatusInForce,
			Provisions: []types.ParsedProvision{
				{Reference: "§1", Section: "1", Title: "Predmet zákona", Content: "Tento zákon upravuje trestnú zodpovednosť."},
				{Reference: "§122", Section: "122", Title: "Vymedzenie pojmov", Content: "zbraňou vec, ktorou možno urobiť útok"},
			},
			Definitions: []types.ParsedDefinition{
				{ProvisionRef: "§122", Term: "zbraňou", Definition: "zbraňou vec, ktorou možno urobiť útok"},
			},
		},
		{
			LawID:  "oou",
			Year:   2018,
			Number: 18,
			Title:  "Zákon o ochrane osobných údajov",
			Status: types.StatusInForce,
			Provisions: []types.ParsedProvision{
				{Reference: "§2", Section: "2", Title: "Pôsobnosť", Content: "Spracúvanie osobných údajov upravuje tento zákon."},
			},
		},
	}
	return New(acts, zerolog.Nop())
}

func doRequest(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	testServer().Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestServer_ListLaws(t *testing.T) {
	rec := doRequest(t, "/api/laws")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []actSummary
	decodeBody(t, rec, &summaries)
	require.Len(t, summaries, 2)
	assert.Equal(t, "tz", summaries[0].LawID)
	assert.Equal(t, 2, summaries[0].ProvisionCount)
	assert.Equal(t, 1, summaries[0].DefinitionCount)
	assert.Equal(t, "in_force", summaries[0].Status)
	assert.Equal(t, "zákon č. 300/2005 Z. z.", summaries[0].Citation)
}

func TestServer_GetLaw(t *testing.T) {
	rec := doRequest(t, "/api/laws/tz")
	require.Equal(t, http.StatusOK, rec.Code)

	var act types.ParsedAct
	decodeBody(t, rec, &act)
	assert.Equal(t, "Zákon č. 300/2005 Z. z. Trestný zákon", act.FullTitle)
	assert.Len(t, act.Provisions, 2)
}

func TestServer_GetLaw_NotFound(t *testing.T) {
	rec := doRequest(t, "/api/laws/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_GetProvision(t *testing.T) {
	// Bare section number and canonical reference both resolve.
	for _, path := range []string{"/api/laws/tz/provisions/122", "/api/laws/tz/provisions/§122"} {
		rec := doRequest(t, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var provision types.ParsedProvision
		decodeBody(t, rec, &provision)
		assert.Equal(t, "§122", provision.Reference)
		assert.Equal(t, "Vymedzenie pojmov", provision.Title)
	}
}

func TestServer_GetProvision_NotFound(t *testing.T) {
	rec := doRequest(t, "/api/laws/tz/provisions/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListDefinitions(t *testing.T) {
	rec := doRequest(t, "/api/laws/tz/definitions")
	require.Equal(t, http.StatusOK, rec.Code)

	var definitions []types.ParsedDefinition
	decodeBody(t, rec, &definitions)
	require.Len(t, definitions, 1)
	assert.Equal(t, "zbraňou", definitions[0].Term)
}

func TestServer_Search(t *testing.T) {
	rec := doRequest(t, "/api/search?q=zakon")
	require.Equal(t, http.StatusOK, rec.Code)

	var hits []map[string]any
	decodeBody(t, rec, &hits)
	assert.NotEmpty(t, hits)
}

func TestServer_SearchScoped(t *testing.T) {
	rec := doRequest(t, "/api/search?q=zakon&law=oou")
	require.Equal(t, http.StatusOK, rec.Code)

	var hits []map[string]any
	decodeBody(t, rec, &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "oou", hits[0]["law_id"])
}

func TestServer_Search_MissingQuery(t *testing.T) {
	rec := doRequest(t, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Search_UnknownLaw(t *testing.T) {
	rec := doRequest(t, "/api/search?q=zakon&law=nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Search_BadLimit(t *testing.T) {
	rec := doRequest(t, "/api/search?q=zakon&limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Search_NoMatches(t *testing.T) {
	rec := doRequest(t, "/api/search?q=nenájditeľné")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
