package server

import (
	"net/http"
	"testing"
)

func TestCatalogInstruments(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/catalog/instruments", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	all, _ := parseJSON(t, resp)["instruments"].([]interface{})
	if len(all) == 0 {
		t.Fatal("expected instruments")
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/catalog/instruments?category=rhythm", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	rhythm, _ := parseJSON(t, resp)["instruments"].([]interface{})
	if len(rhythm) != 2 {
		t.Errorf("expected 2 rhythm instruments, got %d", len(rhythm))
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/catalog/instruments?category=kazoo", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}

func TestCatalogInstrumentByID(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/catalog/instruments/piano", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	if id := parseJSON(t, resp)["id"]; id != "piano" {
		t.Errorf("expected piano, got %v", id)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/catalog/instruments/theremin", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}

func TestCatalogPresetsAndGenres(t *testing.T) {
	ta := setupApp(t)

	for _, path := range []string{"/api/catalog/categories", "/api/catalog/presets", "/api/catalog/genres"} {
		resp, err := doAuthRequest(t, ta.app, http.MethodGet, path, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		assertStatus(t, resp, http.StatusOK)
		readBody(t, resp)
	}

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/catalog/presets/lofi-trio", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	if name := parseJSON(t, resp)["id"]; name != "lofi-trio" {
		t.Errorf("expected lofi-trio, got %v", name)
	}
}

func TestCatalogMapGenre(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/catalog/genres/map", `{"text": "Orchestral"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	result := parseJSON(t, resp)
	if result["genreId"] != "cinematic-orchestral" {
		t.Errorf("expected cinematic-orchestral, got %v", result["genreId"])
	}
	if result["label"] != "Cinematic Orchestral" {
		t.Errorf("expected label Cinematic Orchestral, got %v", result["label"])
	}
}

func TestSelectionValidate(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/validate", `{"instrumentIds": ["drums", "soft-drums", "piano"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["valid"] != false {
		t.Errorf("expected invalid selection, got %v", result["valid"])
	}
	errs, _ := result["errors"].([]interface{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	first, _ := errs[0].(map[string]interface{})
	if first["type"] != "category_conflict" || first["category"] != "rhythm" {
		t.Errorf("unexpected error %v", first)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/validate", `{"instrumentIds": []}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	result = parseJSON(t, resp)
	errs, _ = result["errors"].([]interface{})
	if len(errs) != 1 || errs[0].(map[string]interface{})["type"] != "empty_selection" {
		t.Errorf("expected empty_selection, got %v", errs)
	}
}

func TestSelectionToggle(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/toggle", `{"instrumentIds": ["drums", "piano"], "instrumentId": "soft-drums"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	ids, _ := result["instrumentIds"].([]interface{})
	for _, id := range ids {
		if id == "drums" {
			t.Errorf("expected drums to be replaced, got %v", ids)
		}
	}
	validation, _ := result["validation"].(map[string]interface{})
	if validation["valid"] != true {
		t.Errorf("expected a valid selection after toggle, got %v", validation)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/toggle", `{"instrumentIds": [], "instrumentId": "theremin"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)

	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/toggle", `{"instrumentIds": []}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSelectionPresetMatch(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/preset-match", `{"instrumentIds": ["piano", "bass", "soft-drums"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	preset, _ := parseJSON(t, resp)["preset"].(map[string]interface{})
	if preset["id"] != "lofi-trio" {
		t.Errorf("expected lofi-trio, got %v", preset)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/preset-match", `{"instrumentIds": ["piano"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if p := parseJSON(t, resp)["preset"]; p != nil {
		t.Errorf("expected null preset, got %v", p)
	}
}

func TestSelectionCompatible(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/selection/compatible", `{"instrumentIds": ["piano"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	instruments, ok := parseJSON(t, resp)["instruments"].([]interface{})
	if !ok || len(instruments) == 0 {
		t.Fatalf("expected compatible instruments, got %v", instruments)
	}
	for _, raw := range instruments {
		if raw.(map[string]interface{})["id"] == "piano" {
			t.Error("selected instrument must not be suggested")
		}
	}
}
