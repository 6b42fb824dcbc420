//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"sleep-optimizer/internal/gamedata"
	"sleep-optimizer/internal/sim"
	"sleep-optimizer/internal/solve"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var logger = zap.Must(zap.NewProduction())

// handler serves two actions:
//
//	{"action": "simulate", "team": {...}, "seed": 1, "iterations": 100}
//	{"action": "solve", "recipe": "FANCY_APPLE_CURRY", "team": {...}, "exclude": ["DITTO*"], "maxTeamSize": 5, "level": 30}
//
// The team object uses the team file's keys in camelCase.
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}
	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON")
	}
	req := gjson.Parse(body)

	requestID := uuid.NewString()
	log := logger.With(zap.String("request_id", requestID))

	cfg := DefaultConfig()
	if v := req.Get("seed"); v.Exists() {
		cfg.Seed = v.Int()
	}
	if v := req.Get("iterations"); v.Exists() {
		cfg.Iterations = int(v.Int())
		cfg.SolveIterations = cfg.Iterations
	}
	if err := cfg.checkIterations(); err != nil {
		return errResp(400, err.Error())
	}
	store := gamedata.Default()

	var tf *TeamFile
	if team := req.Get("team"); team.Exists() {
		var err error
		if tf, err = ParseTeamJSON(team); err != nil {
			return errResp(400, err.Error())
		}
	}

	switch action := req.Get("action").String(); action {
	case "simulate":
		if tf == nil {
			return errResp(400, "missing team field")
		}
		teamReq, err := tf.Request(store)
		if err != nil {
			return requestErr(err)
		}
		svc := solve.NewService(store, log, cfg.solveOptions(cfg.Iterations))
		results, err := svc.SimulateTeams(ctx, []solve.TeamRequest{teamReq})
		if err != nil {
			return requestErr(err)
		}
		report := NewTeamReport(teamReq.Name, results[0], teamReq.Settings, store)
		report.RequestID = requestID
		return okResp(report)

	case "solve":
		recipe, err := store.Recipe(req.Get("recipe").String())
		if err != nil {
			return errResp(404, err.Error())
		}
		in := solve.SolveInput{
			Settings: solve.SolveSettings{
				Level:   cfg.SolveLevel,
				Team:    sim.DefaultTeamSettings(),
				Exclude: stringList(req.Get("exclude")),
			},
			MaxTeamSize: cfg.MaxTeamSize,
		}
		if v := req.Get("level"); v.Exists() {
			in.Settings.Level = int(v.Int())
		}
		if v := req.Get("maxTeamSize"); v.Exists() {
			in.MaxTeamSize = int(v.Int())
		}
		if tf != nil {
			teamReq, err := tf.Request(store)
			if err != nil {
				return requestErr(err)
			}
			in.IncludedMembers = teamReq.Members
			in.Settings.Team = teamReq.Settings
		}
		svc := solve.NewService(store, log, cfg.solveOptions(cfg.SolveIterations))
		res, err := svc.SolveRecipe(ctx, recipe, in)
		if err != nil {
			return requestErr(err)
		}
		report := NewSolveReport(res, store)
		report.RequestID = requestID
		return okResp(report)

	case "":
		return errResp(400, "missing action")
	default:
		return errResp(400, fmt.Sprintf("unknown action %q", action))
	}
}

// requestErr maps lookup failures to 404, bad input to 400 and anything
// else to 500.
func requestErr(err error) (events.LambdaFunctionURLResponse, error) {
	switch {
	case gamedata.IsNotFound(err):
		return errResp(404, err.Error())
	case errors.Is(err, sim.ErrInvalidSettings), errors.Is(err, solve.ErrInvalidInput):
		return errResp(400, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		return errResp(500, "internal error")
	}
}

func okResp(v any) (events.LambdaFunctionURLResponse, error) {
	body, err := marshalPretty(v)
	if err != nil {
		return errResp(500, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(body)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := marshalPretty(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	defer logger.Sync()
	lambda.Start(handler)
}
