package heap

import "fmt"

import "github.com/bnclabs/golog"

var _ = fmt.Sprintf("dummy")

func init() {
	setts := map[string]interface{}{
		"log.level": "ignore",
	}
	log.SetLogger(nil, setts)
}
