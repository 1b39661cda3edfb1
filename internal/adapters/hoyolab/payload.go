package hoyolab

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

type rolePayload struct {
	Nickname string `json:"nickname"`
	Level    int    `json:"level"`
	Region   string `json:"region"`
}

type characterPayload struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Element string `json:"element"`
	Rarity  int    `json:"rarity"`
	Rank    int    `json:"rank"`
}

func decodeRoleSummary(endpoint string, body []byte) (domain.RoleSummary, error) {
	root, err := decodeEnvelope(endpoint, body)
	if err != nil {
		return domain.RoleSummary{}, err
	}

	if !isNonBlankString(root.Get("data.nickname")) {
		return domain.RoleSummary{}, domain.NewSchemaError(endpoint, "data.nickname", retcodeDetail(root))
	}

	var payload rolePayload
	if err := json.Unmarshal([]byte(root.Get("data").Raw), &payload); err != nil {
		return domain.RoleSummary{}, domain.NewDecodeError(endpoint, err)
	}

	return domain.RoleSummary{
		DisplayName: payload.Nickname,
		Level:       payload.Level,
		Region:      payload.Region,
	}, nil
}

func decodeCharacters(endpoint string, body []byte) ([]domain.Character, error) {
	root, err := decodeEnvelope(endpoint, body)
	if err != nil {
		return nil, err
	}

	list := root.Get("data.avatar_list")
	if !list.Exists() || list.Type == gjson.Null {
		return nil, domain.NewSchemaError(endpoint, "data.avatar_list", retcodeDetail(root))
	}
	if !list.IsArray() {
		return nil, domain.NewDecodeError(endpoint, fmt.Errorf("data.avatar_list is %s, want array", list.Type))
	}

	entries := list.Array()
	characters := make([]domain.Character, 0, len(entries))
	for i, entry := range entries {
		if !isNonBlankString(entry.Get("name")) {
			return nil, domain.NewSchemaError(endpoint, fmt.Sprintf("data.avatar_list.%d.name", i), "")
		}
		if entry.Get("level").Type != gjson.Number {
			return nil, domain.NewSchemaError(endpoint, fmt.Sprintf("data.avatar_list.%d.level", i), "")
		}

		var payload characterPayload
		if err := json.Unmarshal([]byte(entry.Raw), &payload); err != nil {
			return nil, domain.NewDecodeError(endpoint, fmt.Errorf("avatar %d: %w", i, err))
		}

		characters = append(characters, domain.Character{
			ID:      payload.ID,
			Name:    payload.Name,
			Level:   payload.Level,
			Element: payload.Element,
			Rarity:  payload.Rarity,
			Rank:    payload.Rank,
		})
	}

	return characters, nil
}

// isNonBlankString is false for absent keys, JSON null and non-string values.
func isNonBlankString(value gjson.Result) bool {
	return value.Type == gjson.String && strings.TrimSpace(value.Str) != ""
}

// decodeEnvelope checks the {retcode, message, data} wrapper. The service
// reports auth failures with HTTP 200 and a null data field.
func decodeEnvelope(endpoint string, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, domain.NewDecodeError(endpoint, errInvalidJSON)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, domain.NewDecodeError(endpoint, fmt.Errorf("response body is %s, want object", root.Type))
	}

	data := root.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		return gjson.Result{}, domain.NewSchemaError(endpoint, "data", retcodeDetail(root))
	}

	return root, nil
}

func retcodeDetail(root gjson.Result) string {
	retcode := root.Get("retcode")
	if !retcode.Exists() || retcode.Int() == 0 {
		return ""
	}

	message := root.Get("message").String()
	if message == "" {
		return fmt.Sprintf("retcode %d", retcode.Int())
	}
	return fmt.Sprintf("retcode %d: %s", retcode.Int(), message)
}
