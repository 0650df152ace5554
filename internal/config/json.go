package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types, so that durations can be written as strings like "30m" or "336h".
type StructuredJSONConfig struct {
	Auth struct {
		AccessTokenSecret  string   `json:"access_token_secret"`
		RefreshTokenSecret string   `json:"refresh_token_secret"`
		ResetTokenSecret   string   `json:"reset_token_secret"`
		TokenHashSalt      string   `json:"token_hash_salt"`
		TokenIssuer        string   `json:"token_issuer"`
		AccessTokenTTL     Duration `json:"access_token_ttl"`
		RefreshTokenTTL    Duration `json:"refresh_token_ttl"`
		ResetTokenTTL      Duration `json:"reset_token_ttl"`
		BcryptCost         int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Passkeys struct {
		RPDisplayName string `json:"rp_display_name"`
		RPID          string `json:"rp_id"`
		RPOrigin      string `json:"rp_origin"`
	} `json:"passkeys,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		APIEndpoint   string `json:"api_endpoint"`
		APIKey        string `json:"api_key"`
		From          string `json:"from"`
		ResetLinkBase string `json:"reset_link_base"`
	} `json:"mail,omitempty"`

	Workers struct {
		MailQueueSize int `json:"mail_queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			AccessTokenSecret:  jsonCfg.Auth.AccessTokenSecret,
			RefreshTokenSecret: jsonCfg.Auth.RefreshTokenSecret,
			ResetTokenSecret:   jsonCfg.Auth.ResetTokenSecret,
			TokenHashSalt:      jsonCfg.Auth.TokenHashSalt,
			TokenIssuer:        jsonCfg.Auth.TokenIssuer,
			AccessTokenTTL:     time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL:    time.Duration(jsonCfg.Auth.RefreshTokenTTL),
			ResetTokenTTL:      time.Duration(jsonCfg.Auth.ResetTokenTTL),
			BcryptCost:         jsonCfg.Auth.BcryptCost,
		},
		Passkeys: Passkeys{
			RPDisplayName: jsonCfg.Passkeys.RPDisplayName,
			RPID:          jsonCfg.Passkeys.RPID,
			RPOrigin:      jsonCfg.Passkeys.RPOrigin,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			APIEndpoint:   jsonCfg.Mail.APIEndpoint,
			APIKey:        jsonCfg.Mail.APIKey,
			From:          jsonCfg.Mail.From,
			ResetLinkBase: jsonCfg.Mail.ResetLinkBase,
		},
		Workers: Workers{
			MailQueueSize: jsonCfg.Workers.MailQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
