package pacttest

import (
	"bufio"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gogo/protobuf/proto"
)

var (
	protoMessage = regexp.MustCompile(`^message\s+(\w+)\s*\{`)
	protoField   = regexp.MustCompile(`^(?:repeated\s+)?[\w.]+\s+(\w+)\s*=\s*(\d+)\s*;`)
)

// AssertSchema fails the test unless every given model declares exactly the
// fields, by name and number, of the message with the same name in the
// .proto file. Models are written by hand, this keeps them in line with the
// published schema.
func AssertSchema(t testing.TB, protoFile string, models ...proto.Message) {
	t.Helper()
	want, err := readSchema(protoFile)
	if err != nil {
		t.Fatalf("cannot read %s: %s", protoFile, err)
	}
	for _, m := range models {
		typ := reflect.TypeOf(m).Elem()
		fields, ok := want[typ.Name()]
		if !ok {
			t.Errorf("%s: no message %s", protoFile, typ.Name())
			continue
		}
		got := structSchema(typ)
		if !reflect.DeepEqual(fields, got) {
			t.Errorf("%s: message %s declares %v, Go type has %v", protoFile, typ.Name(), fields, got)
		}
	}
}

// readSchema returns field numbers by field name, per message.
func readSchema(path string) (map[string]map[string]int, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	schema := make(map[string]map[string]int)
	var current map[string]int
	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := protoMessage.FindStringSubmatch(line); m != nil {
			current = make(map[string]int)
			schema[m[1]] = current
			continue
		}
		if line == "}" {
			current = nil
			continue
		}
		if current == nil {
			continue
		}
		if m := protoField.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			current[m[1]] = n
		}
	}
	return schema, sc.Err()
}

func structSchema(typ reflect.Type) map[string]int {
	fields := make(map[string]int)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("protobuf")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		if len(parts) < 2 {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		for _, p := range parts[2:] {
			if strings.HasPrefix(p, "name=") {
				fields[strings.TrimPrefix(p, "name=")] = n
			}
		}
	}
	return fields
}
