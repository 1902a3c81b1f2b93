package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"real-estate-marketplace/internal/contracts/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи схем входящих запросов
const (
	ListingCreateRequest = "ListingCreateRequest/1.0.0"
	ListingUpdateRequest = "ListingUpdateRequest/1.0.0"
	BookingCreateRequest = "BookingCreateRequest/1.0.0"
	BookingStatusRequest = "BookingStatusRequest/1.0.0"
	UserRegisterRequest  = "UserRegisterRequest/1.0.0"
	UserLoginRequest     = "UserLoginRequest/1.0.0"
)

const schemasRoot = "requests"

// ErrInvalidPayload - тело запроса не прошло проверку по схеме
var ErrInvalidPayload = errors.New("invalid request payload")

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	if err := loadSchemas(schemas.SchemasFS); err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}
}

func loadSchemas(fsys fs.FS) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking schema resources: %w", err)
	}

	for _, path := range paths {
		key := generateKeyFromPath(path)
		if key == "" {
			return fmt.Errorf("unexpected schema path %s", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		compiledSchemas[key] = schema
	}
	return nil
}

// generateKeyFromPath преобразует "requests/listing-create/v1.json" в "ListingCreateRequest/1.0.0"
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, schemasRoot+"/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Request")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// Validate проверяет тело запроса по зарегистрированной схеме.
// Ошибки проверки оборачивают ErrInvalidPayload.
func Validate(schemaKey string, body []byte) error {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return fmt.Errorf("schema '%s' not found", schemaKey)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: body is not a valid JSON", ErrInvalidPayload)
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrInvalidPayload, describe(ve))
		}
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// describe сворачивает дерево ошибок в короткие сообщения "поле: причина"
func describe(ve *jsonschema.ValidationError) string {
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "/"
			}
			leaves = append(leaves, location+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.Strings(leaves)
	return strings.Join(leaves, "; ")
}

// SchemaKeys возвращает зарегистрированные ключи, отсортированные
func SchemaKeys() []string {
	keys := make([]string, 0, len(compiledSchemas))
	for k := range compiledSchemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
