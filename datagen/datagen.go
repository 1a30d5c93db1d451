package datagen

import (
	"os"
	"strings"

	"github.com/pingcap/errors"
)

var datasetMap = map[string]func(args map[string]string, dir string) error{ // read-only
	"shop": GenShopData,
}

// Generate produces the named dataset's CSV files in dir. args is a
// comma-separated key=value list, e.g. "customers=200,orders=1000,seed=42".
func Generate(dataset, args, dir string) error {
	gen, ok := datasetMap[strings.ToLower(dataset)]
	if !ok {
		return errors.Errorf("unknown dataset=%v", dataset)
	}
	kvs, err := parseArgs(args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	return gen(kvs, dir)
}

func parseArgs(args string) (map[string]string, error) {
	kvs := make(map[string]string)
	if args == "" {
		return kvs, nil
	}
	for _, arg := range strings.Split(args, ",") {
		tmp := strings.Split(arg, "=")
		if len(tmp) != 2 {
			return nil, errors.Errorf("invalid argument %v", arg)
		}
		kvs[strings.ToLower(strings.TrimSpace(tmp[0]))] = strings.TrimSpace(tmp[1])
	}
	return kvs, nil
}
