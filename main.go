package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	_ "github.com/any-hub/modhost/internal/builtin"
	"github.com/any-hub/modhost/internal/codeunit"
	"github.com/any-hub/modhost/internal/config"
	"github.com/any-hub/modhost/internal/logging"
	"github.com/any-hub/modhost/internal/modcache"
	"github.com/any-hub/modhost/internal/server"
	"github.com/any-hub/modhost/internal/server/routes"
	"github.com/any-hub/modhost/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	listModules bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(*cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	cache, err := buildCache(cfg, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "构建模块缓存失败: %v\n", err)
		return 1
	}
	env := modcache.StaticEnvironment(cfg.ApplicationName)

	// 启动前先读取一次 module.names.map：应用单元缺失或清单损坏时直接失败，
	// 同时预热缓存。
	names, err := cache.ModuleNames(env)
	if err != nil {
		fmt.Fprintf(stdErr, "读取模块清单失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["application"] = cfg.ApplicationName
		fields["modules"] = len(names)
		fields["registered_units"] = codeunit.Names()
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	if opts.listModules {
		return printModules(cache, env, names)
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["application"] = cfg.ApplicationName
	fields["modules"] = len(names)
	fields["modules_path"] = cfg.ModulesPath
	fields["registered_units"] = codeunit.Names()
	fields["listen_port"] = cfg.ListenPort
	fields["log_target"] = cfg.LogTarget()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(cfg, cache, env, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("modhost", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag  string
		checkOnly   bool
		listModules bool
		showVer     bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 MODHOST_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置与模块清单后退出")
	fs.BoolVar(&listModules, "list-modules", false, "列出已知模块及其资源数量后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("MODHOST_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		listModules: listModules,
		showVersion: showVer,
	}, nil
}

// buildCache 组合内嵌注册表与可选的磁盘模块目录；内嵌单元优先。
func buildCache(cfg *config.Config, logger *logrus.Logger) (*modcache.Cache, error) {
	loaders := []codeunit.Loader{codeunit.RegistryLoader()}
	if cfg.UsesModulesPath() {
		loaders = append(loaders, codeunit.DirLoader{Root: cfg.ModulesPath})
	}
	return modcache.New(modcache.Options{
		Loader: codeunit.Chain(loaders...),
		Logger: logger,
	})
}

// printModules 逐行输出 “模块<TAB>资源数量”。
func printModules(cache *modcache.Cache, env modcache.Environment, names []string) int {
	for _, name := range names {
		assets, err := cache.ModuleAssets(env, name)
		if err != nil {
			fmt.Fprintf(stdErr, "读取 %s 资源清单失败: %v\n", name, err)
			return 1
		}
		fmt.Fprintf(stdOut, "%s\t%d\n", name, len(assets))
	}
	return 0
}

func startHTTPServer(cfg *config.Config, cache *modcache.Cache, env modcache.Environment, logger *logrus.Logger) error {
	port := cfg.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:       logger,
		ListenPort:   port,
		ReadTimeout:  cfg.ReadTimeout.DurationValue(),
		WriteTimeout: cfg.WriteTimeout.DurationValue(),
		IdleTimeout:  cfg.IdleTimeout.DurationValue(),
	})
	if err != nil {
		return err
	}
	deps := routes.Deps{Cache: cache, Environment: env, Logger: logger}
	routes.RegisterModuleRoutes(app, deps)
	routes.RegisterFileRoutes(app, deps)

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
