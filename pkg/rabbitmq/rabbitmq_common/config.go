package rabbitmq_common

import "fmt"

// Config - параметры подключения, общие для соединения и издателя
type Config struct {
	URL string
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("rabbitmq: URL is required")
	}
	return nil
}
