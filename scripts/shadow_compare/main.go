// Command shadow_compare replays read-only requests against the legacy Node
// backend and this API and reports status and body differences. Run during
// cutover to verify endpoint parity before retiring the old service.
//
// Volatile fields (ids, timestamps) differ between backends by nature, so
// they are stripped from both sides before comparing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []endpoint `json:"targets"`
}

type probe struct {
	status  int
	body    []byte
	latency time.Duration
	err     error
}

type result struct {
	endpoint endpoint
	current  probe
	legacy   probe
	diffPath string
}

func (r result) verdict() string {
	switch {
	case r.current.err != nil || r.legacy.err != nil:
		return "ERROR"
	case r.current.status != r.legacy.status, r.diffPath != "":
		return "DIFF"
	default:
		return "OK"
	}
}

func main() {
	var (
		currentBase = flag.String("base", "http://localhost:8080", "base URL of this API")
		legacyBase  = flag.String("legacy-base", "http://localhost:5000", "base URL of the legacy Node API")
		targetsPath = flag.String("targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "JSON targets file")
		token       = flag.String("token", os.Getenv("SHADOW_COMPARE_TOKEN"), "bearer token sent to both services")
		timeout     = flag.Duration("timeout", 5*time.Second, "per-request timeout")
		ignore      = flag.String("ignore", "id,created_at,updated_at,generated_at,request_id", "comma-separated JSON keys stripped before comparing")
	)
	flag.Parse()

	endpoints, err := loadTargets(*targetsPath)
	if err != nil {
		log.Fatalf("load targets: %v", err)
	}

	ignored := map[string]bool{}
	for _, k := range strings.Split(*ignore, ",") {
		if k = strings.TrimSpace(k); k != "" {
			ignored[k] = true
		}
	}

	client := &http.Client{Timeout: *timeout}
	breaking := 0
	for _, ep := range endpoints {
		res := compare(client, *currentBase, *legacyBase, *token, ep, ignored)
		report(res)
		if res.verdict() != "OK" && ep.Critical {
			breaking++
		}
	}

	if breaking > 0 {
		fmt.Printf("\n%d critical endpoint(s) differ\n", breaking)
		os.Exit(1)
	}
	fmt.Println("\nall critical endpoints match")
}

func loadTargets(path string) ([]endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f targetsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("no targets in %s", path)
	}
	return f.Targets, nil
}

func compare(client *http.Client, currentBase, legacyBase, token string, ep endpoint, ignored map[string]bool) result {
	res := result{endpoint: ep}
	res.current = fetch(client, currentBase, token, ep)
	res.legacy = fetch(client, legacyBase, token, ep)

	if res.current.err != nil || res.legacy.err != nil {
		return res
	}
	if res.current.status != res.legacy.status {
		return res
	}

	res.diffPath = firstDiff(parse(res.current.body, ignored), parse(res.legacy.body, ignored), "$")
	return res
}

func fetch(client *http.Client, base string, token string, ep endpoint) probe {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ep.Path, "/")

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return probe{err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return probe{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return probe{status: resp.StatusCode, body: body, latency: time.Since(start), err: err}
}

// parse decodes JSON and strips ignored keys; non-JSON bodies are compared
// as raw strings.
func parse(body []byte, ignored map[string]bool) interface{} {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return strings.TrimSpace(string(body))
	}
	return scrub(v, ignored)
}

func scrub(v interface{}, ignored map[string]bool) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if ignored[k] {
				delete(val, k)
				continue
			}
			val[k] = scrub(inner, ignored)
		}
	case []interface{}:
		for i, inner := range val {
			val[i] = scrub(inner, ignored)
		}
	}
	return v
}

// firstDiff walks both values and returns the JSON path of the first
// mismatch, or "" when they are equal.
func firstDiff(a, b interface{}, path string) string {
	am, aok := a.(map[string]interface{})
	bm, bok := b.(map[string]interface{})
	if aok && bok {
		for k, av := range am {
			bv, ok := bm[k]
			if !ok {
				return path + "." + k
			}
			if d := firstDiff(av, bv, path+"."+k); d != "" {
				return d
			}
		}
		for k := range bm {
			if _, ok := am[k]; !ok {
				return path + "." + k
			}
		}
		return ""
	}

	as, aok := a.([]interface{})
	bs, bok := b.([]interface{})
	if aok && bok {
		if len(as) != len(bs) {
			return fmt.Sprintf("%s.length(%d!=%d)", path, len(as), len(bs))
		}
		for i := range as {
			if d := firstDiff(as[i], bs[i], fmt.Sprintf("%s[%d]", path, i)); d != "" {
				return d
			}
		}
		return ""
	}

	if !reflect.DeepEqual(a, b) {
		return path
	}
	return ""
}

func report(res result) {
	fmt.Printf("[%s] %s %s\n", res.verdict(), res.endpoint.Method, res.endpoint.Path)
	if res.current.err != nil {
		fmt.Printf("  this api: %v\n", res.current.err)
	} else {
		fmt.Printf("  this api: %d in %s\n", res.current.status, res.current.latency)
	}
	if res.legacy.err != nil {
		fmt.Printf("  legacy:   %v\n", res.legacy.err)
	} else {
		fmt.Printf("  legacy:   %d in %s\n", res.legacy.status, res.legacy.latency)
	}
	if res.diffPath != "" {
		fmt.Printf("  first diff at %s\n", res.diffPath)
	}
}
