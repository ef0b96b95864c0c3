package server

import (
	"net/http"
	"testing"
)

func TestPreferencesLifecycle(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/preferences", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	if prefs := parseJSON(t, resp)["preferences"]; prefs != nil {
		t.Errorf("expected null preferences, got %v", prefs)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, "/api/preferences", `{"defaultGenre": "jazz-fusion", "defaultBlendRatio": 70}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/preferences", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	prefs, _ := parseJSON(t, resp)["preferences"].(map[string]interface{})
	if prefs["defaultGenre"] != "jazz-fusion" {
		t.Errorf("expected saved genre, got %v", prefs)
	}

	// another user sees nothing
	resp, err = doUserRequest(t, ta.app, "someone-else", http.MethodGet, "/api/preferences", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if other := parseJSON(t, resp)["preferences"]; other != nil {
		t.Errorf("expected preferences to be per user, got %v", other)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/preferences", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNoContent)

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/preferences", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if prefs := parseJSON(t, resp)["preferences"]; prefs != nil {
		t.Errorf("expected cleared preferences, got %v", prefs)
	}
}

func TestPreferencesRejectUnknownInstrument(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPut, "/api/preferences", `{"defaultInstruments": ["theremin"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestPresetsLifecycle(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/presets", `{"name": "Late Night", "genre": "lofi-hiphop", "instruments": ["piano", "bass"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	created := parseJSON(t, resp)
	preset, _ := created["preset"].(map[string]interface{})
	id, _ := preset["id"].(string)
	if id == "" {
		t.Fatalf("expected preset id, got %v", created)
	}
	if preset["energy"] != "Medium" {
		t.Errorf("expected default energy Medium, got %v", preset["energy"])
	}
	if preset["blendRatio"] != float64(30) {
		t.Errorf("expected default blend ratio 30, got %v", preset["blendRatio"])
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, "/api/presets/"+id, `{"name": "Later Night"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	updated, _ := parseJSON(t, resp)["preset"].(map[string]interface{})
	if updated["name"] != "Later Night" {
		t.Errorf("expected renamed preset, got %v", updated)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/presets", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	list, _ := parseJSON(t, resp)["presets"].([]interface{})
	if len(list) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(list))
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/presets/"+id+"?active="+id, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	deleted := parseJSON(t, resp)
	if deleted["resetToDefaults"] != true {
		t.Errorf("expected resetToDefaults, got %v", deleted)
	}

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/presets/"+id, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}

func TestPresetValidation(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/presets", `{"genre": "lofi-hiphop"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, "/api/presets/missing", `{"name": "x"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}
