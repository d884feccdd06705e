package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jimyag/virtprobe/internal/virtprobe/config"
	"github.com/jimyag/virtprobe/pkg/hostcmd"
)

func TestHypervisorService_Detect(t *testing.T) {
	t.Parallel()

	psWithLibvirtd := "root 1234 1 0 10:00 ? 00:00:01 /usr/sbin/libvirtd\n"
	psWithout := "root 1 0 0 10:00 ? 00:00:01 /sbin/init\n"

	testcases := []struct {
		name           string
		modules        []string
		modulesErr     error
		ps             string
		virtualSubtype string
		want           string
	}{
		{
			name:    "kvm detected",
			modules: []string{"kvm_intel", "kvm", "irqbypass"},
			ps:      psWithLibvirtd,
			want:    "kvm",
		},
		{
			name:    "kvm modules without libvirtd",
			modules: []string{"kvm_intel", "kvm"},
			ps:      psWithout,
			want:    "",
		},
		{
			name:    "no kvm modules",
			modules: []string{"ext4", "br_netfilter"},
			ps:      psWithLibvirtd,
			want:    "",
		},
		{
			name:           "xen dom0 detected",
			modules:        []string{"xen_blkback", "xen_netback"},
			ps:             psWithLibvirtd,
			virtualSubtype: "Xen Dom0",
			want:           "xen",
		},
		{
			name:    "xen modules without dom0 grain",
			modules: []string{"xen_blkback"},
			ps:      psWithLibvirtd,
			want:    "",
		},
		{
			name:           "dom0 grain without xen modules",
			modules:        []string{"ext4"},
			ps:             psWithLibvirtd,
			virtualSubtype: "Xen Dom0",
			want:           "",
		},
		{
			name:       "unreadable modules",
			modulesErr: fmt.Errorf("permission denied"),
			ps:         psWithLibvirtd,
			want:       "",
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			runner := &hostcmd.MockRunner{}
			if tc.modulesErr != nil {
				runner.On("KernelModules").Return(nil, tc.modulesErr)
			} else {
				runner.On("KernelModules").Return(tc.modules, nil)
			}
			runner.On("ProcessList", mock.Anything).Return(tc.ps, nil)

			svc := NewHypervisorService(runner, config.Grains{
				PS:             "ps -efH",
				VirtualSubtype: tc.virtualSubtype,
			})

			result, err := svc.Detect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Detected)
		})
	}
}
