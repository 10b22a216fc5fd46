package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteConfigCmd(t *testing.T) {
	// Load a sample configuration to Viper
	viper.SetConfigType("yaml")
	configData := []byte(`
logging:
    colors: true
    format: text
    level: INFO
    output: stdout
    timeformat: "15:04:05"
site:
    prefix: site/
    folder: ""
storage:
    accesskey: AKIAEXAMPLE
    secretkey: supersecret
    bucket: demo-bucket
    region: us-east-1
sync:
    exclude:
        - .DS_Store
        - "*.map"
telemetry:
    enabled: false
    metrics:
        exporter: prometheus
        prometheus:
            address: 127.0.0.1:9090
            path: /metrics
`)
	require.NoError(t, viper.ReadConfig(bytes.NewBuffer(configData)))

	var stdout bytes.Buffer

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)

	t.Run("Stdout", func(t *testing.T) {
		stdout.Reset()
		rootCmd.SetArgs([]string{"writeConfig"})
		assert.NoError(t, rootCmd.Execute())

		assert.Contains(t, stdout.String(), "bucket: demo-bucket")
		assert.Contains(t, stdout.String(), "*.map")
		assert.NotContains(t, stdout.String(), "supersecret")
		assert.NotContains(t, stdout.String(), "AKIAEXAMPLE")

		m := make(map[string]interface{})
		assert.NoError(t, yaml.Unmarshal(stdout.Bytes(), &m))
	})

	t.Run("File", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "config.yaml")

		rootCmd.SetArgs([]string{"writeConfig", "-o", out})
		assert.NoError(t, rootCmd.Execute())

		b, err := os.ReadFile(out)
		require.NoError(t, err)

		assert.Contains(t, string(b), "prefix: site/")
		assert.Contains(t, string(b), "secretkey: supersecret")

		m := make(map[string]interface{})
		assert.NoError(t, yaml.Unmarshal(b, &m))
	})
}

func TestRedact(t *testing.T) {
	settings := map[string]interface{}{
		"storage": map[string]interface{}{
			"secretkey": "supersecret",
			"accesskey": "",
		},
		"site": "not a map",
	}

	redact(settings, "storage.secretkey")
	redact(settings, "storage.accesskey")
	redact(settings, "site.prefix")
	redact(settings, "missing.key")

	assert.Equal(t, map[string]interface{}{
		"storage": map[string]interface{}{
			"secretkey": "********",
			"accesskey": "",
		},
		"site": "not a map",
	}, settings)
}

func TestVersionCmd(t *testing.T) {
	var stdout bytes.Buffer

	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "dev\n", stdout.String())
}
