package todoapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// loadSession restores cookies saved by a previous login.
func (c *Client) loadSession() error {
	if c.sessionPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(c.sessionPath), err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("invalid %s: %w", filepath.Base(c.sessionPath), err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	c.jar.SetCookies(c.baseURL, cookies)
	return nil
}

// saveSession writes the current cookies with mode 0600.
func (c *Client) saveSession() error {
	if c.sessionPath == "" {
		return nil
	}
	var stored []storedCookie
	for _, ck := range c.jar.Cookies(c.baseURL) {
		stored = append(stored, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0700); err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0600)
}

// clearSession forgets the stored cookies.
func (c *Client) clearSession() error {
	if c.sessionPath == "" {
		return nil
	}
	if err := os.Remove(c.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
