package memory

import (
	"fmt"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/player"
)

type seedClub struct {
	code    string
	name    string
	players []seedPlayer
}

type seedPlayer struct {
	name     string
	position player.Position
	price    float64
}

const (
	gk  = player.PositionGoalkeeper
	def = player.PositionDefender
	mid = player.PositionMidfielder
	fwd = player.PositionForward
)

var seedClubs = []seedClub{
	{code: "mbsg", name: "Mohun Bagan Super Giants", players: []seedPlayer{
		{"Vishal Kaith", gk, 5.5}, {"Dhiraj Singh", gk, 4.5},
		{"Subhasish Bose", def, 6.0}, {"Anwar Ali", def, 6.0}, {"Tom Aldred", def, 5.5}, {"Asish Rai", def, 5.0},
		{"Greg Stewart", mid, 8.0}, {"Liston Colaco", mid, 7.5}, {"Anirudh Thapa", mid, 7.0}, {"Sahal Abdul Samad", mid, 7.0},
		{"Jamie Maclaren", fwd, 9.0}, {"Jason Cummings", fwd, 8.5},
	}},
	{code: "bfc", name: "Bengaluru FC", players: []seedPlayer{
		{"Gurpreet Singh Sandhu", gk, 5.5}, {"Lara Sharma", gk, 4.5},
		{"Rahul Bheke", def, 5.5}, {"Roshan Naorem", def, 5.5}, {"Chinglensana Singh", def, 5.0}, {"Nikhil Poojary", def, 5.0},
		{"Alberto Noguera", mid, 7.5}, {"Ryan Williams", mid, 7.0}, {"Suresh Wangjam", mid, 6.0}, {"Pedro Capo", mid, 6.0},
		{"Sunil Chhetri", fwd, 9.0}, {"Edgar Mendez", fwd, 8.0},
	}},
	{code: "kbfc", name: "Kerala Blasters FC", players: []seedPlayer{
		{"Sachin Suresh", gk, 5.0}, {"Som Kumar", gk, 4.5},
		{"Milos Drincic", def, 5.5}, {"Pritam Kotal", def, 5.5}, {"Hormipam Ruivah", def, 5.0}, {"Naocha Singh", def, 4.5},
		{"Adrian Luna", mid, 8.5}, {"Korou Singh", mid, 6.0}, {"Danish Farooq", mid, 6.0}, {"Vibin Mohanan", mid, 5.5},
		{"Jesus Jimenez", fwd, 8.5}, {"Noah Sadaoui", fwd, 8.0},
	}},
	{code: "mcfc", name: "Mumbai City FC", players: []seedPlayer{
		{"Phurba Lachenpa", gk, 5.5}, {"TP Rehenesh", gk, 4.5},
		{"Mehtab Singh", def, 5.5}, {"Tiri", def, 5.5}, {"Akash Mishra", def, 5.5}, {"Valpuia", def, 5.0},
		{"Lallianzuala Chhangte", mid, 8.0}, {"Brandon Fernandes", mid, 7.0}, {"Jon Toral", mid, 7.0}, {"Yoell van Nieff", mid, 6.0},
		{"Nikos Karelis", fwd, 8.0}, {"Vikram Partap Singh", fwd, 7.0},
	}},
	{code: "fcg", name: "FC Goa", players: []seedPlayer{
		{"Hrithik Tiwari", gk, 5.0}, {"Laxmikant Kattimani", gk, 5.0},
		{"Sandesh Jhingan", def, 6.0}, {"Odei Onaindia", def, 5.5}, {"Boris Singh", def, 5.0}, {"Jay Gupta", def, 5.0},
		{"Borja Herrera", mid, 7.5}, {"Brison Fernandes", mid, 6.5}, {"Udanta Singh", mid, 6.5}, {"Sahil Tavora", mid, 5.5},
		{"Armando Sadiku", fwd, 8.0}, {"Iker Guarrotxena", fwd, 8.0},
	}},
	{code: "ofc", name: "Odisha FC", players: []seedPlayer{
		{"Amrinder Singh", gk, 5.0}, {"Anuj Kumar", gk, 4.5},
		{"Mourtada Fall", def, 6.0}, {"Carlos Delgado", def, 5.5}, {"Jerry Lalrinzuala", def, 5.0}, {"Thoiba Singh", def, 4.5},
		{"Hugo Boumous", mid, 7.5}, {"Ahmed Jahouh", mid, 7.0}, {"Isak Vanlalruatfela", mid, 6.0}, {"Puitea", mid, 5.5},
		{"Roy Krishna", fwd, 8.5}, {"Diego Mauricio", fwd, 8.0},
	}},
}

// SeedTeams lists the bundled club names.
func SeedTeams() []string {
	out := make([]string, 0, len(seedClubs))
	for _, club := range seedClubs {
		out = append(out, club.name)
	}
	return out
}

// SeedPlayers builds the bundled catalogue. IDs look like "mbsg-gk-01".
func SeedPlayers() []player.Player {
	var out []player.Player
	for _, club := range seedClubs {
		seq := make(map[player.Position]int, len(player.AllPositions))
		for _, sp := range club.players {
			seq[sp.position]++
			out = append(out, player.Player{
				ID:       fmt.Sprintf("%s-%s-%02d", club.code, strings.ToLower(string(sp.position)), seq[sp.position]),
				Name:     sp.name,
				Team:     club.name,
				Position: sp.position,
				Price:    player.MoneyFromUnits(sp.price),
			})
		}
	}
	return out
}
