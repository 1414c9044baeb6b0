package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Setting keys. Focus durations are stored in seconds.
const (
	SettingPomodoro   = "focus_pomodoro"
	SettingShortBreak = "focus_short_break"
	SettingLongBreak  = "focus_long_break"
	SettingRounds     = "focus_rounds"
	SettingDailyGoal  = "daily_goal"
)

// numericSettings must hold whole numbers above zero.
var numericSettings = map[string]bool{
	SettingPomodoro:   true,
	SettingShortBreak: true,
	SettingLongBreak:  true,
	SettingRounds:     true,
	SettingDailyGoal:  true,
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	if err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value); err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// IntSetting reads a numeric setting, falling back to def when it is missing
// or malformed.
func (s *Store) IntSetting(key string, def int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// SetSetting upserts key. Known numeric keys reject anything but a positive
// whole number.
func (s *Store) SetSetting(key, value string) error {
	value = strings.TrimSpace(value)
	if numericSettings[key] {
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return fmt.Errorf("setting %q: %q is not a positive whole number", key, value)
		}
	}
	if _, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetAllSettings lists every stored setting by key.
func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var all []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		all = append(all, st)
	}
	return all, rows.Err()
}
