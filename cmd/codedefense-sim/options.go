package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
)

// envPrefix 环境变量前缀，.env 文件中的键同样使用该前缀
const envPrefix = "CODEDEFENSE_"

// options 命令行选项
// 默认值依次来自：内置默认值 → 环境变量（含 .env） → 命令行参数
type options struct {
	world       int
	level       int
	levels      int
	seed        int64
	dt          float64
	maxTicks    int
	configDir   string
	metricsAddr string
	verbose     bool
}

func defaultOptions() options {
	return options{
		world:    1,
		level:    1,
		levels:   1,
		seed:     1,
		dt:       0.03,
		maxTicks: 200000,
	}
}

// applyEnv 用环境变量覆盖默认值
func (o *options) applyEnv(getenv func(string) string) error {
	var errs []error
	intVar := func(key string, dst *int) {
		if v := getenv(envPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = n
		}
	}

	intVar("WORLD", &o.world)
	intVar("LEVEL", &o.level)
	intVar("LEVELS", &o.levels)
	intVar("MAX_TICKS", &o.maxTicks)

	if v := getenv(envPrefix + "SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", envPrefix, err))
		} else {
			o.seed = n
		}
	}
	if v := getenv(envPrefix + "DT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDT: %w", envPrefix, err))
		} else {
			o.dt = f
		}
	}
	if v := getenv(envPrefix + "CONFIG_DIR"); v != "" {
		o.configDir = v
	}
	if v := getenv(envPrefix + "METRICS_ADDR"); v != "" {
		o.metricsAddr = v
	}
	if v := getenv(envPrefix + "VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sVERBOSE: %w", envPrefix, err))
		} else {
			o.verbose = b
		}
	}

	return errors.Join(errs...)
}

// parseOptions 解析命令行，环境变量提供默认值
func parseOptions(args []string, getenv func(string) string) (options, error) {
	o := defaultOptions()
	if err := o.applyEnv(getenv); err != nil {
		return o, err
	}

	fs := flag.NewFlagSet("codedefense-sim", flag.ContinueOnError)
	fs.IntVar(&o.world, "world", o.world, "起始世界")
	fs.IntVar(&o.level, "level", o.level, "起始关卡")
	fs.IntVar(&o.levels, "levels", o.levels, "连续运行的关卡数")
	fs.Int64Var(&o.seed, "seed", o.seed, "随机种子")
	fs.Float64Var(&o.dt, "dt", o.dt, "每帧模拟时长（秒）")
	fs.IntVar(&o.maxTicks, "max-ticks", o.maxTicks, "单关最大帧数")
	fs.StringVar(&o.configDir, "config", o.configDir, "覆盖内置配置表的目录")
	fs.StringVar(&o.metricsAddr, "metrics", o.metricsAddr, "Prometheus 监听地址（如 :2112），为空时不启动")
	fs.BoolVar(&o.verbose, "verbose", o.verbose, "显示详细日志")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.dt <= 0 {
		return o, fmt.Errorf("dt must be positive, got %v", o.dt)
	}
	if o.levels <= 0 || o.maxTicks <= 0 {
		return o, fmt.Errorf("levels and max-ticks must be positive")
	}
	return o, nil
}
