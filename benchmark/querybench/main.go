package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	weatherGrpc "liyu1981.xyz/weather-monitor-service/pkg/grpc"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

var maxWorkers int = 200
var actionsPerWorker int = 20
var httpHostPort string = "127.0.0.1:8000"
var grpcHostPort string = "127.0.0.1:8001"

var grpcClient *weatherGrpc.WeatherMonitorServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

type sample struct {
	name    string
	latency time.Duration
	failed  bool
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = weatherGrpc.NewWeatherMonitorServiceClient(conn)

	fmt.Printf("gRPC client created\n")

	startTime := time.Now()
	for _, city := range models.Cities {
		setThreshold(city)
	}
	fmt.Printf("set thresholds for %v cities in %v\n", len(models.Cities), time.Since(startTime))

	samples := make(chan sample, maxWorkers*actionsPerWorker)

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range actionsPerWorker {
				samples <- doAction()
				fmt.Printf("\rworker %v executed action %v", i, j)
			}
		}()
	}
	wg.Wait()
	close(samples)
	usedTime := time.Since(startTime)

	report(samples, usedTime)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndCity() models.City {
	rndMu.Lock()
	defer rndMu.Unlock()
	return models.Cities[rnd.Intn(len(models.Cities))]
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func setThreshold(city models.City) {
	minTemp := rndFloat64(-10.0, 20.0, 1)
	maxTemp := rndFloat64(30.0, 50.0, 1)
	payload := map[string]any{
		"city":     string(city),
		"max_temp": maxTemp,
		"min_temp": minTemp,
	}

	if flipCoin() {
		jsonData, _ := json.Marshal(payload)
		resp, err := http.Post(fmt.Sprintf("http://%s/set-alert-threshold", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			panic(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			panic(fmt.Sprintf("set threshold for %s: status %v", city, resp.StatusCode))
		}
	} else {
		req, err := structpb.NewStruct(payload)
		if err != nil {
			panic(err)
		}
		if _, err := grpcClient.SetAlertThreshold(context.Background(), req); err != nil {
			panic(fmt.Sprintf("set threshold for %s: %v", city, err))
		}
	}
}

func httpGet(path string) bool {
	resp, err := http.Get(fmt.Sprintf("http://%s%s", httpHostPort, path))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	// an empty summary window answers 404, which is still a served request
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
}

func grpcOK(err error) bool {
	return err == nil || status.Code(err) == codes.NotFound
}

func doAction() sample {
	city := rndCity()
	ctx := context.Background()

	actions := []struct {
		name string
		run  func() bool
	}{
		{"http GetAlertThreshold", func() bool { return httpGet("/alert-threshold/" + string(city)) }},
		{"http GetNotifications", func() bool { return httpGet("/notifications/" + string(city) + "?limit=20") }},
		{"http GetSummaries", func() bool { return httpGet("/summaries/" + string(city)) }},
		{"http GetWeatherHistory", func() bool { return httpGet("/weather-history/" + string(city)) }},
		{"http GetAllSummaries", func() bool { return httpGet("/all-summaries") }},
		{"grpc GetAlertThreshold", func() bool {
			_, err := grpcClient.GetAlertThreshold(ctx, wrapperspb.String(string(city)))
			return grpcOK(err)
		}},
		{"grpc ListNotifications", func() bool {
			req, _ := structpb.NewStruct(map[string]any{"city": string(city), "limit": 20})
			_, err := grpcClient.ListNotifications(ctx, req)
			return grpcOK(err)
		}},
		{"grpc GetSummaries", func() bool {
			req, _ := structpb.NewStruct(map[string]any{"city": string(city)})
			_, err := grpcClient.GetSummaries(ctx, req)
			return grpcOK(err)
		}},
	}

	rndMu.Lock()
	action := actions[rnd.Intn(len(actions))]
	rndMu.Unlock()

	start := time.Now()
	ok := action.run()
	return sample{name: action.name, latency: time.Since(start), failed: !ok}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

func report(samples <-chan sample, usedTime time.Duration) {
	byName := map[string][]time.Duration{}
	failures := map[string]int{}
	total := 0
	for s := range samples {
		total++
		byName[s.name] = append(byName[s.name], s.latency)
		if s.failed {
			failures[s.name]++
		}
	}

	fmt.Printf(
		"\n\rdid %v actions: used time=%v seconds, throughput=%v action/second\n",
		total, usedTime.Seconds(), float64(total)/usedTime.Seconds(),
	)

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		latencies := byName[name]
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		fmt.Printf("%-24s n=%-6v failed=%-4v p50=%-12v p95=%-12v p99=%v\n",
			name, len(latencies), failures[name],
			percentile(latencies, 50), percentile(latencies, 95), percentile(latencies, 99))
	}
}
