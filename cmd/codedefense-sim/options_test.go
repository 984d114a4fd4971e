package main

import "testing"

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		check   func(t *testing.T, o options)
		wantErr bool
	}{
		{
			name: "默认值",
			check: func(t *testing.T, o options) {
				if o != defaultOptions() {
					t.Errorf("Expected defaults, got %+v", o)
				}
			},
		},
		{
			name: "环境变量覆盖默认值",
			env: map[string]string{
				"CODEDEFENSE_WORLD":        "3",
				"CODEDEFENSE_LEVELS":       "7",
				"CODEDEFENSE_SEED":         "99",
				"CODEDEFENSE_DT":           "0.05",
				"CODEDEFENSE_METRICS_ADDR": ":2112",
				"CODEDEFENSE_VERBOSE":      "true",
			},
			check: func(t *testing.T, o options) {
				if o.world != 3 || o.levels != 7 || o.seed != 99 || o.dt != 0.05 {
					t.Errorf("Env not applied: %+v", o)
				}
				if o.metricsAddr != ":2112" || !o.verbose {
					t.Errorf("Env not applied: %+v", o)
				}
			},
		},
		{
			name: "命令行优先于环境变量",
			args: []string{"-world", "2", "-level", "5"},
			env:  map[string]string{"CODEDEFENSE_WORLD": "4", "CODEDEFENSE_LEVEL": "9"},
			check: func(t *testing.T, o options) {
				if o.world != 2 || o.level != 5 {
					t.Errorf("Expected 2-5, got %d-%d", o.world, o.level)
				}
			},
		},
		{
			name:    "环境变量格式错误",
			env:     map[string]string{"CODEDEFENSE_SEED": "abc"},
			wantErr: true,
		},
		{
			name:    "非正步长",
			args:    []string{"-dt", "0"},
			wantErr: true,
		},
		{
			name:    "非正关卡数",
			args:    []string{"-levels", "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseOptions(tt.args, envMap(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, o)
			}
		})
	}
}
