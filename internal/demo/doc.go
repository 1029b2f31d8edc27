// Package demo registers the example pages rendered by the deuce command.
//
// Each Demo builds a fresh tree from an Env, so the same demo can be
// rendered many times, for example once per inspector session.
package demo
