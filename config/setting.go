package config

import (
	"flag"
	"io/ioutil"
	"log"
	"time"

	"gopkg.in/yaml.v2"
)

// Role is the fixed master/slave role a process is started with.
// Matches FLAGS_master_slave_role in the original nameserver: one
// process is "master", the other is "slave", for the lifetime of
// the process.
type Role string

const (
	RoleMaster Role = "master"
	RoleSlave  Role = "slave"
)

// Sync holds the replication engine's tunables.
type Sync struct {
	Role Role `yaml:"Role"`

	// SlaveNode is the follower's gRPC address. Ignored on the slave.
	SlaveNode string `yaml:"SlaveNode"`

	// ListenAddress is the address this process's gRPC server binds
	// to. Only the slave binds it and serves AppendLog; the master
	// does not use it.
	ListenAddress string `yaml:"ListenAddress"`

	// WorkDir is the directory sync.log, prog.log and prog.tmp live
	// in.
	WorkDir string `yaml:"WorkDir"`

	// RPCTimeoutMS bounds a single AppendLog attempt.
	RPCTimeoutMS int `yaml:"RPCTimeoutMS"`

	// RetryBackoffMS is how long the Replicator sleeps between failed
	// AppendLog attempts.
	RetryBackoffMS int `yaml:"RetryBackoffMS"`

	// ProgressIntervalMS is how often the ProgressPersister snapshots
	// sync_offset.
	ProgressIntervalMS int `yaml:"ProgressIntervalMS"`
}

type Config struct {
	Sync *Sync `yaml:"Sync"`
}

func (s *Sync) RPCTimeout() time.Duration {
	return time.Duration(s.RPCTimeoutMS) * time.Millisecond
}

func (s *Sync) RetryBackoff() time.Duration {
	return time.Duration(s.RetryBackoffMS) * time.Millisecond
}

func (s *Sync) ProgressInterval() time.Duration {
	return time.Duration(s.ProgressIntervalMS) * time.Millisecond
}

func defaultConfig() *Config {
	return &Config{
		Sync: &Sync{
			Role:               RoleMaster,
			SlaveNode:          "127.0.0.1:6070",
			ListenAddress:      "127.0.0.1:6070",
			WorkDir:            ".",
			RPCTimeoutMS:       15000,
			RetryBackoffMS:     5000,
			ProgressIntervalMS: 10000,
		},
	}
}

// Load reads a YAML config file in the shape of config.yaml. Missing
// optional fields keep their default value.
func Load(path string) (*Config, error) {
	conf := defaultConfig()
	file, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(file, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// LoadOrFatal is Load, but aborts the process with log.Fatalf on
// failure.
func LoadOrFatal(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		log.Fatalf("[config] failed to read %s: %v", path, err)
	}
	return conf
}

// Flags overlays command-line flags on top of a loaded config, the
// way raft/options.go layers flag.String calls over a data directory
// and address pair. Call after Load/LoadOrFatal so flag defaults fall
// back to the file's values.
func Flags(conf *Config) *Config {
	role := flag.String("role", string(conf.Sync.Role), "master or slave")
	slaveNode := flag.String("slave-node", conf.Sync.SlaveNode, "follower gRPC address")
	listen := flag.String("listen", conf.Sync.ListenAddress, "address this process's gRPC server binds to")
	workDir := flag.String("data-dir", conf.Sync.WorkDir, "directory for sync.log/prog.log")
	flag.Parse()

	conf.Sync.Role = Role(*role)
	conf.Sync.SlaveNode = *slaveNode
	conf.Sync.ListenAddress = *listen
	conf.Sync.WorkDir = *workDir
	return conf
}
