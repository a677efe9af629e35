package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 5
	duration   = 3 * time.Minute
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

type TeamResponse struct {
	ID string `json:"id"`
}

type TaskResponse struct {
	ID string `json:"id"`
}

type account struct {
	userID string
	token  string
}

var (
	accounts []account
	teams    []string
	tasks    []string
	httpc    = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url, token string, body any, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 400 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: registering users...")

	for u := 1; u <= 50; u++ {
		var auth AuthResponse
		status, err := postJSON(targetHost+"/api/auth/register", "", RegisterRequest{
			Email:    fmt.Sprintf("load-%d@example.com", u),
			Password: "LoadTest1",
			Name:     fmt.Sprintf("Load User %d", u),
		}, &auth)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN register returned %d\n", status)
			continue
		}
		accounts = append(accounts, account{userID: auth.User.ID, token: auth.AccessToken})
		time.Sleep(15 * time.Millisecond)
	}

	log.Println("Seeding: creating teams with members and tasks...")

	for t := 0; t < 10; t++ {
		admin := accounts[t*5]
		var team TeamResponse
		status, err := postJSON(targetHost+"/api/teams", admin.token,
			map[string]string{"name": fmt.Sprintf("team-%02d", t)}, &team)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN teams returned %d\n", status)
			continue
		}
		teams = append(teams, team.ID)

		for m := 1; m < 5; m++ {
			member := accounts[t*5+m]
			status, err = postJSON(targetHost+"/api/teams/"+team.ID+"/members", admin.token,
				map[string]string{"user_id": member.userID}, nil)
			if err != nil {
				return err
			}
			if status >= 400 {
				log.Printf("WARN members returned %d\n", status)
			}
		}

		for k := 1; k <= 10; k++ {
			var task TaskResponse
			status, err = postJSON(targetHost+"/api/tasks", admin.token, map[string]string{
				"team_id": team.ID,
				"title":   fmt.Sprintf("task-%02d-%02d", t, k),
			}, &task)
			if err != nil {
				return err
			}
			if status >= 400 {
				log.Printf("WARN tasks returned %d\n", status)
				continue
			}
			tasks = append(tasks, task.ID)
		}
		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: users=%d teams=%d tasks=%d\n", len(accounts), len(teams), len(tasks))
	return nil
}

func authHeader(token string) map[string][]string {
	return map[string][]string{
		"Authorization": {"Bearer " + token},
		"Content-Type":  {"application/json"},
	}
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()
		acct := accounts[rand.Intn(len(accounts))]

		// 40% GET team tasks
		if r < 0.40 {
			team := teams[rand.Intn(len(teams))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/teams/%s/tasks", targetHost, team)
			t.Body = nil
			t.Header = authHeader(acct.token)
			return nil
		}

		// 25% GET my teams
		if r < 0.65 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/api/teams"
			t.Body = nil
			t.Header = authHeader(acct.token)
			return nil
		}

		// 20% GET task history
		if r < 0.85 {
			task := tasks[rand.Intn(len(tasks))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/tasks/%s/history", targetHost, task)
			t.Body = nil
			t.Header = authHeader(acct.token)
			return nil
		}

		// 10% POST assign
		if r < 0.95 {
			task := tasks[rand.Intn(len(tasks))]
			body, _ := json.Marshal(map[string]string{"user_id": acct.userID})
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/api/tasks/%s/assign", targetHost, task)
			t.Body = body
			t.Header = authHeader(acct.token)
			return nil
		}

		// 5% POST create task
		team := teams[rand.Intn(len(teams))]
		body, _ := json.Marshal(map[string]string{
			"team_id": team,
			"title":   fmt.Sprintf("loadtask-%d", time.Now().UnixNano()),
		})
		t.Method = http.MethodPost
		t.URL = targetHost + "/api/tasks"
		t.Body = body
		t.Header = authHeader(acct.token)
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
